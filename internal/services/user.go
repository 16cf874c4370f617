package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/jobdeck/types"
)

// dobLayout is the wire and storage format for dates of birth.
const dobLayout = "2006-01-02"

// ErrInvalidDOB is returned by Register when the date of birth does not
// parse as YYYY-MM-DD.
var ErrInvalidDOB = errors.New("invalid date of birth")

// UserRepository defines persistence operations for registered identities.
type UserRepository interface {
	FindByEmailAndPassword(ctx context.Context, email, password string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	ListAll(ctx context.Context) ([]types.User, error)
}

// UserService encapsulates identity use-cases: credential checks and signup.
type UserService struct {
	repo UserRepository
	now  func() time.Time
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

// Authenticate returns the user whose email and password both match
// exactly. Returns store.ErrNotFound when there is no match.
//
// The password comparison is plaintext, matching how credentials are
// stored. This is a known security gap, not a sanctioned design choice;
// see types.User.Password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (types.User, error) {
	return s.repo.FindByEmailAndPassword(ctx, email, password)
}

// Register creates a new identity with a generated id and an age derived
// from the date of birth. Returns store.ErrConflict when the email is
// already registered.
func (s *UserService) Register(ctx context.Context, name, email, password, dob string) (types.User, error) {
	birthDate, err := time.Parse(dobLayout, dob)
	if err != nil {
		return types.User{}, fmt.Errorf("%w: %q", ErrInvalidDOB, dob)
	}

	user := types.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
		DOB:      dob,
		Age:      ageAt(birthDate, s.now()),
	}
	return s.repo.Create(ctx, user)
}

// ListAll returns every registered identity. Admin read path only.
func (s *UserService) ListAll(ctx context.Context) ([]types.User, error) {
	return s.repo.ListAll(ctx)
}

// ageAt computes age in full years: the year difference, minus one if
// the current month/day precedes the birth month/day.
func ageAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}
