package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jobdeck/jobdeck/types"
	"github.com/lib/pq"
)

// UserStateRepository handles persistence for per-user job-interaction state.
type UserStateRepository struct {
	db *sql.DB
}

func NewUserStateRepository(db *sql.DB) *UserStateRepository {
	return &UserStateRepository{db: db}
}

// Get returns the stored record for userID, or ErrNotFound if none exists.
func (r *UserStateRepository) Get(ctx context.Context, userID string) (types.UserState, error) {
	const query = `
		SELECT user_id, applied_job_ids, bookmarked_job_ids
		FROM user_state
		WHERE user_id = $1`
	state := types.UserState{}
	var applied, bookmarked pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&state.UserID, &applied, &bookmarked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.UserState{}, ErrNotFound
		}
		return types.UserState{}, err
	}
	state.AppliedJobs = []int64(applied)
	state.BookmarkedJobs = []int64(bookmarked)
	if state.AppliedJobs == nil {
		state.AppliedJobs = []int64{}
	}
	if state.BookmarkedJobs == nil {
		state.BookmarkedJobs = []int64{}
	}
	return state, nil
}

// Put upserts the record for userID. A nil slice keeps the previously
// stored value for that field (patch semantics); a non-nil empty slice
// clears it. NULL parameters fall through to the stored column via
// COALESCE, so the two cases stay distinct at the SQL level.
func (r *UserStateRepository) Put(ctx context.Context, userID string, applied, bookmarked []int64) error {
	const query = `
		INSERT INTO user_state (user_id, applied_job_ids, bookmarked_job_ids)
		VALUES ($1, COALESCE($2, '{}'::bigint[]), COALESCE($3, '{}'::bigint[]))
		ON CONFLICT (user_id) DO UPDATE SET
			applied_job_ids = COALESCE($2, user_state.applied_job_ids),
			bookmarked_job_ids = COALESCE($3, user_state.bookmarked_job_ids)`
	_, err := r.db.ExecContext(ctx, query, userID, int64ArrayOrNull(applied), int64ArrayOrNull(bookmarked))
	return err
}

func int64ArrayOrNull(values []int64) interface{} {
	if values == nil {
		return nil
	}
	return pq.Int64Array(values)
}
