package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/store"
	"github.com/jobdeck/jobdeck/types"
)

// UserStore is a file-backed user repository.
type UserStore struct {
	mu   sync.Mutex
	path string
}

func NewUserStore(dir string) *UserStore {
	return &UserStore{path: filepath.Join(dir, usersFileName)}
}

// FindByEmailAndPassword returns the user matching both fields exactly.
func (s *UserStore) FindByEmailAndPassword(ctx context.Context, email, password string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return types.User{}, err
	}
	for _, rec := range doc.Users {
		if rec.Email == email && rec.Password == password {
			return toUser(rec), nil
		}
	}
	return types.User{}, store.ErrNotFound
}

// Create appends a new user, rejecting duplicate emails with ErrConflict.
func (s *UserStore) Create(ctx context.Context, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return types.User{}, err
	}
	for _, rec := range doc.Users {
		if rec.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}

	user.CreatedAt = time.Now()
	doc.Users = append(doc.Users, userRecord{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		DOB:       user.DOB,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
	})
	if err := writeDocument(s.path, doc); err != nil {
		return types.User{}, fmt.Errorf("save users: %w", err)
	}
	return user, nil
}

// ListAll returns every registered user in file order.
func (s *UserStore) ListAll(ctx context.Context) ([]types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	users := make([]types.User, 0, len(doc.Users))
	for _, rec := range doc.Users {
		users = append(users, toUser(rec))
	}
	return users, nil
}

func (s *UserStore) load() (*usersDocument, error) {
	doc := &usersDocument{}
	if err := readDocument(s.path, doc); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return doc, nil
}

func toUser(rec userRecord) types.User {
	return types.User{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Password:  rec.Password,
		DOB:       rec.DOB,
		Age:       rec.Age,
		CreatedAt: rec.CreatedAt,
	}
}
