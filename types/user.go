package types

import "time"

// User represents a registered identity in the system.
type User struct {
	// ID is the unique identifier of the user, generated at signup.
	ID string `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. Unique across the store,
	// compared case-sensitively as stored.
	Email string `json:"email" db:"email"`

	// Password is the user's password, stored in plaintext.
	//
	// WARNING: plaintext credential storage is a known security gap
	// carried over from the system this service replaces. It must be
	// replaced by salted hashing before any production exposure.
	// This field is never exposed in API responses.
	Password string `json:"-" db:"password"`

	// DOB is the user's date of birth in YYYY-MM-DD form.
	DOB string `json:"dob" db:"dob"`

	// Age is the user's age in full years, derived from DOB at signup.
	Age int `json:"age" db:"age"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-" db:"created_at"`
}
