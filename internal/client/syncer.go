package client

import (
	"context"
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/logging"
	"github.com/jobdeck/jobdeck/types"
)

const (
	loadTimeout = 10 * time.Second
	saveTimeout = 10 * time.Second

	// saveQueueDepth bounds the backlog of pending pushes. Mutations
	// enqueue without holding the state lock, so a slow backend delays
	// durability, not the UI.
	saveQueueDepth = 64
)

type saveRequest struct {
	userID     string
	applied    []int64
	bookmarked []int64
}

// Syncer holds the authoritative in-client copy of the applied and
// bookmarked job sets for the currently authenticated identity.
//
// On a transition to authenticated it loads the user's record from the
// backend; mutations are disallowed until that load completes. On a
// transition to unauthenticated it clears local state immediately; the
// stored record is untouched. Every completed mutation pushes the full
// local state to the backend, fire-and-forget: push failures are
// logged, never surfaced, and do not roll back the local mutation.
type Syncer struct {
	api API
	log logging.Logger

	mu         sync.Mutex
	userID     string
	loading    bool
	gen        uint64
	applied    []int64
	bookmarked []int64

	saves     chan saveRequest
	done      chan struct{}
	closeOnce sync.Once
}

// NewSyncer constructs a Syncer and starts its push worker. Call Close
// to drain pending pushes and stop the worker.
func NewSyncer(api API, log logging.Logger) *Syncer {
	s := &Syncer{
		api:        api,
		log:        log,
		applied:    []int64{},
		bookmarked: []int64{},
		saves:      make(chan saveRequest, saveQueueDepth),
		done:       make(chan struct{}),
	}
	go s.runSaves()
	return s
}

// Attach subscribes the syncer to the session manager's transitions.
func (s *Syncer) Attach(m *SessionManager) {
	m.OnChange(s.handleAuthChange)
}

// Close drains pending pushes and stops the worker.
func (s *Syncer) Close() {
	s.closeOnce.Do(func() {
		close(s.saves)
	})
	<-s.done
}

// Applied returns a copy of the applied job ids.
func (s *Syncer) Applied() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.applied...)
}

// Bookmarked returns a copy of the bookmarked job ids.
func (s *Syncer) Bookmarked() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.bookmarked...)
}

// HasApplied reports whether jobID is in the applied set. Callers use
// this before Apply: the syncer itself does not deduplicate.
func (s *Syncer) HasApplied(jobID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.applied, jobID)
}

// IsBookmarked reports whether jobID is in the bookmarked set.
func (s *Syncer) IsBookmarked(jobID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return contains(s.bookmarked, jobID)
}

// Loading reports whether the initial state load is still outstanding.
func (s *Syncer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Apply adds jobID to the applied set and pushes the new state. A call
// while unauthenticated or still loading is silently ignored. Duplicate
// applies duplicate the id; callers check HasApplied first.
func (s *Syncer) Apply(jobID int64) {
	s.mu.Lock()
	if !s.mutableLocked() {
		s.mu.Unlock()
		return
	}
	s.applied = append(s.applied, jobID)
	req := s.snapshotLocked()
	s.mu.Unlock()

	s.saves <- req
}

// Withdraw removes every occurrence of jobID from the applied set and
// pushes the new state.
func (s *Syncer) Withdraw(jobID int64) {
	s.mu.Lock()
	if !s.mutableLocked() {
		s.mu.Unlock()
		return
	}
	s.applied = remove(s.applied, jobID)
	req := s.snapshotLocked()
	s.mu.Unlock()

	s.saves <- req
}

// ToggleBookmark removes jobID from the bookmarked set if present,
// otherwise adds it, and pushes the new state.
func (s *Syncer) ToggleBookmark(jobID int64) {
	s.mu.Lock()
	if !s.mutableLocked() {
		s.mu.Unlock()
		return
	}
	if contains(s.bookmarked, jobID) {
		s.bookmarked = remove(s.bookmarked, jobID)
	} else {
		s.bookmarked = append(s.bookmarked, jobID)
	}
	req := s.snapshotLocked()
	s.mu.Unlock()

	s.saves <- req
}

// handleAuthChange reacts to session transitions: a new identity starts
// an asynchronous state load, end of session clears local state. Either
// way the generation counter advances so a load still in flight for a
// previous identity has its result discarded.
func (s *Syncer) handleAuthChange(user *types.User) {
	s.mu.Lock()
	s.gen++
	s.applied = []int64{}
	s.bookmarked = []int64{}

	if user == nil {
		s.userID = ""
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.userID = user.ID
	s.loading = true
	gen := s.gen
	userID := user.ID
	s.mu.Unlock()

	go s.loadState(gen, userID)
}

func (s *Syncer) loadState(gen uint64, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	state, err := s.api.GetUserState(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// Superseded by a logout or a newer session.
		return
	}
	s.loading = false
	if err != nil {
		// The UI stays usable with empty sets; durability catches up
		// on the next successful load.
		s.log.Warn(ctx, "user-state load failed", "userId", userID, "error", err)
		return
	}
	s.applied = append([]int64{}, state.AppliedJobs...)
	s.bookmarked = append([]int64{}, state.BookmarkedJobs...)
}

func (s *Syncer) runSaves() {
	defer close(s.done)
	for req := range s.saves {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := s.api.PutUserState(ctx, req.userID, req.applied, req.bookmarked)
		if err != nil {
			s.log.Warn(ctx, "user-state save failed", "userId", req.userID, "error", err)
		}
		cancel()
	}
}

func (s *Syncer) mutableLocked() bool {
	return s.userID != "" && !s.loading
}

func (s *Syncer) snapshotLocked() saveRequest {
	return saveRequest{
		userID:     s.userID,
		applied:    append([]int64{}, s.applied...),
		bookmarked: append([]int64{}, s.bookmarked...),
	}
}

func contains(ids []int64, jobID int64) bool {
	for _, id := range ids {
		if id == jobID {
			return true
		}
	}
	return false
}

func remove(ids []int64, jobID int64) []int64 {
	kept := ids[:0]
	for _, id := range ids {
		if id != jobID {
			kept = append(kept, id)
		}
	}
	return kept
}
