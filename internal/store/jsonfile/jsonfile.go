// Package jsonfile provides file-backed implementations of the user and
// user-state stores. Records live in two JSON documents (users.json,
// user-data.json) under a configurable directory, matching the layout of
// the system this service replaces. The backend is intended for local
// development and tests; production deployments use the postgres backend.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	usersFileName     = "users.json"
	userStateFileName = "user-data.json"
)

type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	DOB       string    `json:"dob"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
}

type usersDocument struct {
	Users []userRecord `json:"users"`
}

type stateRecord struct {
	UserID         string  `json:"userId"`
	AppliedJobs    []int64 `json:"appliedJobs"`
	BookmarkedJobs []int64 `json:"bookmarkedJobs"`
}

type stateDocument struct {
	UserData []stateRecord `json:"userData"`
}

// readDocument loads the JSON document at path into out. A missing or
// unparsable file counts as an empty store: the document is materialized
// on the first write.
func readDocument(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if jsonErr := json.Unmarshal(data, out); jsonErr != nil {
		// Corrupt document. Treated as empty rather than fatal; the next
		// successful write replaces it wholesale.
		return nil
	}
	return nil
}

// writeDocument writes the document atomically via a temp file rename.
func writeDocument(path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
