package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jobdeck/jobdeck/internal/store"
	"github.com/jobdeck/jobdeck/types"
)

// UserStateStore is a file-backed user-state repository.
type UserStateStore struct {
	mu   sync.Mutex
	path string
}

func NewUserStateStore(dir string) *UserStateStore {
	return &UserStateStore{path: filepath.Join(dir, userStateFileName)}
}

// Get returns the stored record for userID, or ErrNotFound if none exists.
func (s *UserStateStore) Get(ctx context.Context, userID string) (types.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return types.UserState{}, err
	}
	for _, rec := range doc.UserData {
		if rec.UserID == userID {
			return toUserState(rec), nil
		}
	}
	return types.UserState{}, store.ErrNotFound
}

// Put upserts the record for userID. A nil slice keeps the previously
// stored value for that field; a non-nil empty slice clears it.
func (s *UserStateStore) Put(ctx context.Context, userID string, applied, bookmarked []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}

	index := -1
	for i, rec := range doc.UserData {
		if rec.UserID == userID {
			index = i
			break
		}
	}

	if index >= 0 {
		if applied != nil {
			doc.UserData[index].AppliedJobs = applied
		}
		if bookmarked != nil {
			doc.UserData[index].BookmarkedJobs = bookmarked
		}
	} else {
		rec := stateRecord{UserID: userID, AppliedJobs: []int64{}, BookmarkedJobs: []int64{}}
		if applied != nil {
			rec.AppliedJobs = applied
		}
		if bookmarked != nil {
			rec.BookmarkedJobs = bookmarked
		}
		doc.UserData = append(doc.UserData, rec)
	}

	if err := writeDocument(s.path, doc); err != nil {
		return fmt.Errorf("save user state: %w", err)
	}
	return nil
}

func (s *UserStateStore) load() (*stateDocument, error) {
	doc := &stateDocument{}
	if err := readDocument(s.path, doc); err != nil {
		return nil, fmt.Errorf("load user state: %w", err)
	}
	return doc, nil
}

func toUserState(rec stateRecord) types.UserState {
	state := types.UserState{
		UserID:         rec.UserID,
		AppliedJobs:    rec.AppliedJobs,
		BookmarkedJobs: rec.BookmarkedJobs,
	}
	if state.AppliedJobs == nil {
		state.AppliedJobs = []int64{}
	}
	if state.BookmarkedJobs == nil {
		state.BookmarkedJobs = []int64{}
	}
	return state
}
