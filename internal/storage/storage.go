// Package storage defines the Storage interface, a contract that any
// student record backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// The menu and the subcommands should not know or care where records
// live. Two backends satisfy this contract:
//
//   - filestore: an ordered in-memory collection mirrored to one JSON or
//     YAML file (the default).
//
//   - sqlite: the same records in a SQLite database file.
//
// Expected conditions come back as the sentinel errors below; callers
// check them with errors.Is. Nothing in a backend panics.
package storage

import (
	"errors"

	"github.com/aanand-mishra/trackstudent/internal/types"
)

var (
	// ErrNotFound means no record has the requested ID.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicate means a record with the same ID already exists.
	ErrDuplicate = errors.New("student id already exists")

	// ErrPersistence wraps I/O failures while writing the backing store.
	// When a backend returns it, the in-memory state was left as it was
	// before the call.
	ErrPersistence = errors.New("persistence failure")
)

// Storage is the record store contract.
type Storage interface {
	// Add stores a new record. Returns ErrDuplicate if the ID is taken.
	Add(student types.Student) error

	// FindByID returns the first record whose ID equals the trimmed id,
	// or ErrNotFound.
	FindByID(id string) (types.Student, error)

	// FindByName returns every record whose name contains fragment,
	// ignoring case, in registration order. An empty fragment returns an
	// empty slice.
	FindByName(fragment string) ([]types.Student, error)

	// Update applies the allow-listed fields of changes (see
	// types.ApplyChanges) and returns the updated record.
	Update(id string, changes map[string]any) (types.Student, error)

	// Remove deletes the record with the given ID, or returns ErrNotFound.
	Remove(id string) error

	// All returns a snapshot of every record in registration order.
	All() ([]types.Student, error)

	// Count returns the number of stored records.
	Count() (int, error)

	// Close releases the backend's resources.
	Close() error
}
