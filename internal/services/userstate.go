package services

import (
	"context"
	"errors"

	"github.com/jobdeck/jobdeck/internal/store"
	"github.com/jobdeck/jobdeck/types"
)

// UserStateRepository defines persistence operations for per-user
// job-interaction state. Put treats a nil slice as "field omitted":
// the stored value for that field is kept. A non-nil empty slice
// clears the field.
type UserStateRepository interface {
	Get(ctx context.Context, userID string) (types.UserState, error)
	Put(ctx context.Context, userID string, applied, bookmarked []int64) error
}

// UserStateService encapsulates user-state use-cases.
type UserStateService struct {
	repo UserStateRepository
}

func NewUserStateService(repo UserStateRepository) *UserStateService {
	return &UserStateService{repo: repo}
}

// Get returns the stored record for userID. A user with no record gets
// the default empty record; absence is not an error.
func (s *UserStateService) Get(ctx context.Context, userID string) (types.UserState, error) {
	state, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.EmptyUserState(userID), nil
		}
		return types.UserState{}, err
	}
	return state, nil
}

// Put upserts the record for userID with patch semantics: a nil slice
// keeps the previously stored value for that field.
func (s *UserStateService) Put(ctx context.Context, userID string, applied, bookmarked []int64) error {
	return s.repo.Put(ctx, userID, applied, bookmarked)
}
