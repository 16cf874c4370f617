package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobdeck/jobdeck/internal/store"
	"github.com/jobdeck/jobdeck/types"
)

type fakeUserRepo struct {
	users []types.User
}

func (f *fakeUserRepo) FindByEmailAndPassword(ctx context.Context, email, password string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email && user.Password == password {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]types.User, error) {
	return append([]types.User{}, f.users...), nil
}

func newTestUserService(repo *fakeUserRepo, now time.Time) *UserService {
	service := NewUserService(repo)
	service.now = func() time.Time { return now }
	return service
}

func TestRegisterThenAuthenticate(t *testing.T) {
	repo := &fakeUserRepo{}
	service := newTestUserService(repo, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	created, err := service.Register(context.Background(), "Ada", "ada@example.com", "secret", "2000-06-15")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}

	found, err := service.Authenticate(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("authenticate returned id %q, want %q", found.ID, created.ID)
	}
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	service := newTestUserService(repo, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if _, err := service.Register(context.Background(), "Ada", "ada@example.com", "secret", "2000-06-15"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Authenticate(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegisterAge(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		now  time.Time
		want int
	}{
		{"day before birthday", "2000-06-15", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), 23},
		{"on birthday", "2000-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 24},
		{"earlier month", "2000-06-15", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 23},
		{"later month", "2000-06-15", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), 24},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service := newTestUserService(&fakeUserRepo{}, tc.now)
			user, err := service.Register(context.Background(), "Ada", tc.name+"@example.com", "secret", tc.dob)
			if err != nil {
				t.Fatalf("register: %v", err)
			}
			if user.Age != tc.want {
				t.Fatalf("age = %d, want %d", user.Age, tc.want)
			}
		})
	}
}

func TestRegisterDuplicateEmailDoesNotMutate(t *testing.T) {
	repo := &fakeUserRepo{}
	service := newTestUserService(repo, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	if _, err := service.Register(context.Background(), "Ada", "ada@example.com", "secret", "2000-06-15"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Register(context.Background(), "Imposter", "ada@example.com", "other", "1990-01-01")
	if !errors.Is(err, store.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	users, err := service.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("store has %d users after conflict, want 1", len(users))
	}
	if users[0].Name != "Ada" {
		t.Fatalf("stored user changed: %+v", users[0])
	}
}

func TestRegisterRejectsInvalidDOB(t *testing.T) {
	service := newTestUserService(&fakeUserRepo{}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := service.Register(context.Background(), "Ada", "ada@example.com", "secret", "15/06/2000")
	if !errors.Is(err, ErrInvalidDOB) {
		t.Fatalf("expected ErrInvalidDOB, got %v", err)
	}
}
