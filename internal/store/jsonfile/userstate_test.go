package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/jobdeck/jobdeck/internal/store"
)

func TestUserStateGetMissing(t *testing.T) {
	s := NewUserStateStore(t.TempDir())

	_, err := s.Get(context.Background(), "u1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStatePutAndGet(t *testing.T) {
	s := NewUserStateStore(t.TempDir())
	ctx := context.Background()

	if err := s.Put(ctx, "u1", []int64{42, 7}, []int64{3}); err != nil {
		t.Fatalf("put: %v", err)
	}

	state, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(state.AppliedJobs, []int64{42, 7}) {
		t.Fatalf("appliedJobs = %v", state.AppliedJobs)
	}
	if !reflect.DeepEqual(state.BookmarkedJobs, []int64{3}) {
		t.Fatalf("bookmarkedJobs = %v", state.BookmarkedJobs)
	}
}

func TestUserStatePatchSemantics(t *testing.T) {
	s := NewUserStateStore(t.TempDir())
	ctx := context.Background()

	if err := s.Put(ctx, "u1", []int64{1}, []int64{7, 9}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Omitted bookmarks keep the stored value.
	if err := s.Put(ctx, "u1", []int64{1, 2}, nil); err != nil {
		t.Fatalf("patch put: %v", err)
	}
	state, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(state.AppliedJobs, []int64{1, 2}) {
		t.Fatalf("appliedJobs = %v", state.AppliedJobs)
	}
	if !reflect.DeepEqual(state.BookmarkedJobs, []int64{7, 9}) {
		t.Fatalf("omitted field was not preserved: %v", state.BookmarkedJobs)
	}

	// A present-but-empty slice clears the field.
	if err := s.Put(ctx, "u1", nil, []int64{}); err != nil {
		t.Fatalf("clearing put: %v", err)
	}
	state, err = s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(state.BookmarkedJobs) != 0 {
		t.Fatalf("present-but-empty did not clear: %v", state.BookmarkedJobs)
	}
	if !reflect.DeepEqual(state.AppliedJobs, []int64{1, 2}) {
		t.Fatalf("unrelated field changed: %v", state.AppliedJobs)
	}
}

func TestUserStatePerUserIsolation(t *testing.T) {
	s := NewUserStateStore(t.TempDir())
	ctx := context.Background()

	var wg sync.WaitGroup
	users := []string{"u1", "u2", "u3", "u4"}
	for i, userID := range users {
		wg.Add(1)
		go func(userID string, jobID int64) {
			defer wg.Done()
			_ = s.Put(ctx, userID, []int64{jobID}, nil)
		}(userID, int64(i+100))
	}
	wg.Wait()

	for i, userID := range users {
		state, err := s.Get(ctx, userID)
		if err != nil {
			t.Fatalf("get %s: %v", userID, err)
		}
		want := []int64{int64(i + 100)}
		if !reflect.DeepEqual(state.AppliedJobs, want) {
			t.Fatalf("user %s appliedJobs = %v, want %v", userID, state.AppliedJobs, want)
		}
	}
}

func TestUserStateCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, userStateFileName), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	s := NewUserStateStore(dir)
	if _, err := s.Get(context.Background(), "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("corrupt store should read as empty, got %v", err)
	}
	if err := s.Put(context.Background(), "u1", []int64{1}, nil); err != nil {
		t.Fatalf("put over corrupt store: %v", err)
	}
}
