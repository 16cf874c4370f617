package types

// UserState is the durable per-user record of job interactions.
// At most one record exists per user; a user with no record is
// equivalent to one with both sets empty.
type UserState struct {
	// UserID is the owning user's ID.
	UserID string `json:"userId" db:"user_id"`

	// AppliedJobs holds the ids of jobs the user has applied to,
	// in application order. Duplicates are possible; callers are
	// expected to check membership before applying.
	AppliedJobs []int64 `json:"appliedJobs" db:"applied_job_ids"`

	// BookmarkedJobs holds the ids of jobs the user has bookmarked.
	BookmarkedJobs []int64 `json:"bookmarkedJobs" db:"bookmarked_job_ids"`
}

// EmptyUserState returns the default record for a user with no stored state.
func EmptyUserState(userID string) UserState {
	return UserState{
		UserID:         userID,
		AppliedJobs:    []int64{},
		BookmarkedJobs: []int64{},
	}
}
