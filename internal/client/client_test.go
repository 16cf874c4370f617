package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/types"
)

// ---- helpers ----

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testCache(t *testing.T) *SessionCache {
	t.Helper()
	return NewSessionCache(filepath.Join(t.TempDir(), "session"), "test-secret", time.Hour)
}

// ---- fake API ----

// fakeAPI is an in-memory backend double. getGate, when set, blocks
// GetUserState until the channel is closed, letting tests hold the
// initial load open.
type fakeAPI struct {
	mu       sync.Mutex
	users    map[string]types.User
	states   map[string]types.UserState
	putCount int
	getGate  chan struct{}
	getErr   error
	putErr   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users:  map[string]types.User{},
		states: map[string]types.UserState{},
	}
}

func (f *fakeAPI) addUser(user types.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.Email] = user
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok || user.Password != password {
		return types.User{}, ErrUnauthorized
	}
	return user, nil
}

func (f *fakeAPI) Signup(ctx context.Context, name, email, password, dob string) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return types.User{}, ErrConflict
	}
	user := types.User{ID: "id-" + email, Name: name, Email: email, Password: password, DOB: dob, Age: 24}
	f.users[email] = user
	return user, nil
}

func (f *fakeAPI) GetUserState(ctx context.Context, userID string) (types.UserState, error) {
	f.mu.Lock()
	gate := f.getGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return types.UserState{}, f.getErr
	}
	state, ok := f.states[userID]
	if !ok {
		return types.EmptyUserState(userID), nil
	}
	return state, nil
}

func (f *fakeAPI) PutUserState(ctx context.Context, userID string, applied, bookmarked []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	state, ok := f.states[userID]
	if !ok {
		state = types.EmptyUserState(userID)
	}
	if applied != nil {
		state.AppliedJobs = append([]int64{}, applied...)
	}
	if bookmarked != nil {
		state.BookmarkedJobs = append([]int64{}, bookmarked...)
	}
	f.states[userID] = state
	f.putCount++
	return nil
}

func (f *fakeAPI) storedState(userID string) (types.UserState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.states[userID]
	return state, ok
}

func (f *fakeAPI) puts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putCount
}

func (f *fakeAPI) setState(userID string, applied, bookmarked []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[userID] = types.UserState{UserID: userID, AppliedJobs: applied, BookmarkedJobs: bookmarked}
}

var _ API = (*fakeAPI)(nil)

func errUnavailable() error {
	return fmt.Errorf("%w: connection refused", ErrUnavailable)
}
