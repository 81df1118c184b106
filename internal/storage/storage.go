// Package storage defines the Storage interface — the contract any backend
// must satisfy to persist the registrar between runs.
//
// Persistence is all-or-nothing: the whole catalog and every student are read
// once at startup and written back in bulk. There is no write-through, so a
// backend only needs Load and Save.
//
// Two implementations exist:
//
//   - textfile: the line-oriented courses/students files (default)
//   - sqlite:   the same data in a single SQLite database file
package storage

import "github.com/aanand-mishra/course-registrar/internal/types"

// Snapshot is the full persisted state, in insertion order.
type Snapshot struct {
	Courses  []types.Course
	Students []types.Student
}

// Storage is the persistence contract.
type Storage interface {
	// Load reads the persisted state. A backend with nothing stored yet
	// returns an empty Snapshot and no error.
	Load() (Snapshot, error)

	// Save replaces the persisted state with snap.
	Save(snap Snapshot) error
}
