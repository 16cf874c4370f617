package e2e

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobdeck/jobdeck/internal/client"
	"github.com/jobdeck/jobdeck/internal/handlers"
	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/internal/server"
	"github.com/jobdeck/jobdeck/internal/services"
	"github.com/jobdeck/jobdeck/internal/store/jsonfile"
)

// startBackend runs the full router over the file store backend.
func startBackend(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	userService := services.NewUserService(jsonfile.NewUserStore(dir))
	stateService := services.NewUserStateService(jsonfile.NewUserStateStore(dir))
	router := server.NewRouter(userService, stateService, handlers.RequireAdmin("e2e-secret"))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClientStack(t *testing.T, baseURL string) (*client.SessionManager, *client.Syncer) {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	api := client.NewHTTPClient(baseURL)
	cache := client.NewSessionCache(filepath.Join(t.TempDir(), "session"), "e2e-session", time.Hour)

	manager := client.NewSessionManager(api, cache, log)
	syncer := client.NewSyncer(api, log)
	syncer.Attach(manager)
	t.Cleanup(syncer.Close)
	return manager, syncer
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestUserFlowLifecycle(t *testing.T) {
	backend := startBackend(t)
	manager, syncer := newClientStack(t, backend.URL)
	ctx := context.Background()

	if !manager.Signup(ctx, "Ada", "ada@example.com", "secret", "2000-06-15") {
		t.Fatal("signup failed")
	}
	waitFor(t, "initial load", func() bool { return !syncer.Loading() })

	syncer.Apply(42)
	syncer.Apply(17)
	syncer.ToggleBookmark(7)
	syncer.Withdraw(42)

	user, ok := manager.Current()
	if !ok {
		t.Fatal("expected an authenticated session")
	}

	api := client.NewHTTPClient(backend.URL)
	waitFor(t, "state to persist", func() bool {
		state, err := api.GetUserState(ctx, user.ID)
		if err != nil {
			return false
		}
		return len(state.AppliedJobs) == 1 && state.AppliedJobs[0] == 17 &&
			len(state.BookmarkedJobs) == 1 && state.BookmarkedJobs[0] == 7
	})

	manager.Logout()
	if len(syncer.Applied()) != 0 || len(syncer.Bookmarked()) != 0 {
		t.Fatal("logout must clear local state")
	}

	// A fresh login sees the last persisted state, not the cleared one.
	if !manager.Login(ctx, "ada@example.com", "secret") {
		t.Fatal("login failed")
	}
	waitFor(t, "reload after login", func() bool { return !syncer.Loading() })
	applied := syncer.Applied()
	if len(applied) != 1 || applied[0] != 17 {
		t.Fatalf("reloaded applied = %v, want [17]", applied)
	}
	if !syncer.IsBookmarked(7) {
		t.Fatal("reloaded bookmarks missing 7")
	}
}

func TestUserFlowDuplicateSignup(t *testing.T) {
	backend := startBackend(t)
	manager, _ := newClientStack(t, backend.URL)
	ctx := context.Background()

	if !manager.Signup(ctx, "Ada", "ada@example.com", "secret", "2000-06-15") {
		t.Fatal("signup failed")
	}
	manager.Logout()

	if manager.Signup(ctx, "Imposter", "ada@example.com", "other", "1990-01-01") {
		t.Fatal("duplicate signup must fail")
	}
	if _, ok := manager.Current(); ok {
		t.Fatal("failed signup must not establish a session")
	}

	if !manager.Login(ctx, "ada@example.com", "secret") {
		t.Fatal("original credentials must still work")
	}
	user, _ := manager.Current()
	if user.Age != calendarAge(2000, time.June, 15) {
		t.Fatalf("age = %d, want calendar-correct age", user.Age)
	}
}

// calendarAge computes the expected full-year age for a birth date
// against the current date, mirroring the signup derivation.
func calendarAge(year int, month time.Month, day int) int {
	now := time.Now()
	age := now.Year() - year
	if now.Month() < month || (now.Month() == month && now.Day() < day) {
		age--
	}
	return age
}
