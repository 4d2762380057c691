// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk, like the default
// JSON/YAML backend, but each mutation is its own transaction instead of a
// full rewrite. Select it with storage_backend: sqlite.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql;
// its Error type is also used to recognise unique-constraint violations.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/trackstudent/internal/config"
	"github.com/aanand-mishra/trackstudent/internal/storage"
	"github.com/aanand-mishra/trackstudent/internal/types"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the students
// table if it does not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open is New for callers that only have a path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   seq       : insertion counter; ORDER BY seq is registration order
	//   id        : the STU… identifier, unique
	//   created_at: YYYY-MM-DD, written once
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT    NOT NULL UNIQUE,
			name       TEXT    NOT NULL,
			email      TEXT    NOT NULL,
			course     TEXT    NOT NULL,
			age        INTEGER NOT NULL,
			created_at TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

const selectColumns = "SELECT id, name, email, course, age, created_at FROM students"

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var s types.Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Course, &s.Age, &s.CreatedAt)
	return s, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Add inserts a new row. The UNIQUE constraint on id does the duplicate
// check; the driver's constraint error is mapped to storage.ErrDuplicate.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Add(student types.Student) error {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (id, name, email, course, age, created_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("Add: prepare: %w: %w", storage.ErrPersistence, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(student.ID, student.Name, student.Email, student.Course, student.Age, student.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("Add %s: %w", student.ID, storage.ErrDuplicate)
		}
		return fmt.Errorf("Add: exec: %w: %w", storage.ErrPersistence, err)
	}

	return nil
}

// FindByID fetches exactly one row matched by id.
func (s *SQLite) FindByID(id string) (types.Student, error) {
	stmt, err := s.Db.Prepare(selectColumns + " WHERE id = ? ORDER BY seq LIMIT 1")
	if err != nil {
		return types.Student{}, fmt.Errorf("FindByID: prepare: %w", err)
	}
	defer stmt.Close()

	student, err := scanStudent(stmt.QueryRow(strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %q: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("FindByID: scan: %w", err)
	}

	return student, nil
}

// FindByName filters in Go rather than with LIKE: SQLite's lower() only
// folds ASCII, and both backends must match the same names.
func (s *SQLite) FindByName(fragment string) ([]types.Student, error) {
	matches := make([]types.Student, 0)
	if strings.TrimSpace(fragment) == "" {
		return matches, nil
	}

	all, err := s.All()
	if err != nil {
		return nil, fmt.Errorf("FindByName: %w", err)
	}
	for _, st := range all {
		if types.MatchesName(st.Name, fragment) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

// All returns every row in registration order.
func (s *SQLite) All() ([]types.Student, error) {
	rows, err := s.Db.Query(selectColumns + " ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("All: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("All: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("All: rows iteration: %w", err)
	}

	return students, nil
}

// Count returns the number of rows.
func (s *SQLite) Count() (int, error) {
	var n int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM students").Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Update applies the allow-listed changes to the stored row.
// The record is read, changed in Go with types.ApplyChanges, and the four
// mutable columns are written back, so both backends share one allow-list.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Update(id string, changes map[string]any) (types.Student, error) {
	student, err := s.FindByID(id)
	if err != nil {
		return types.Student{}, err
	}

	if err := types.ApplyChanges(&student, changes); err != nil {
		return types.Student{}, fmt.Errorf("Update %q: %w", id, err)
	}

	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, email = ?, course = ?, age = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("Update: prepare: %w: %w", storage.ErrPersistence, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(student.Name, student.Email, student.Course, student.Age, student.ID)
	if err != nil {
		return types.Student{}, fmt.Errorf("Update: exec: %w: %w", storage.ErrPersistence, err)
	}

	return student, nil
}

// Remove deletes the row with the given id.
func (s *SQLite) Remove(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("Remove: prepare: %w: %w", storage.ErrPersistence, err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("Remove: exec: %w: %w", storage.ErrPersistence, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Remove: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no student found with id %q: %w", id, storage.ErrNotFound)
	}

	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

var _ storage.Storage = (*SQLite)(nil)
