// Package filestore provides the file-backed implementation of the
// storage.Storage interface.
//
// HOW IT WORKS
// ────────────
// The Store keeps every record in an ordered slice (registration order)
// and mirrors that slice to a single human-readable file. Every mutating
// call follows the same shape:
//
//  1. check the precondition (duplicate id / record exists)
//  2. change the slice
//  3. save the WHOLE slice to disk
//  4. if the save failed, undo step 2
//
// so after any call returns, memory and disk hold the same collection.
//
// Saves never write the target in place: the data goes to a temp file in
// the same directory, which is synced and then renamed over the target.
// A crash mid-save leaves either the old file or the new one.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aanand-mishra/trackstudent/internal/storage"
	"github.com/aanand-mishra/trackstudent/internal/types"
)

// corruptSuffix is appended to the backing file path when a malformed file
// is copied aside on load.
const corruptSuffix = ".corrupt"

// Store is the file-backed record store.
type Store struct {
	mu       sync.Mutex
	path     string
	codec    Codec
	log      *slog.Logger
	students []types.Student
	loadErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithCodec overrides the codec picked from the file extension.
func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

// New opens the store backed by path and loads its records.
//
// New does not fail. A missing file is an empty store. A file that cannot
// be read or parsed also yields an empty store; the reason is kept in
// Diagnostic and logged.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		codec:    CodecFor(path),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		students: make([]types.Student, 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	return s
}

// Diagnostic returns the reason the backing file could not be loaded, or
// nil if loading succeeded (or there was no file).
func (s *Store) Diagnostic() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("backing file not found, starting empty", slog.String("path", s.path))
		return
	}
	if err != nil {
		s.fail(fmt.Errorf("filestore: read %s: %w", s.path, err))
		return
	}

	students, err := s.codec.Decode(data)
	if err != nil {
		s.fail(fmt.Errorf("filestore: load %s: %w", s.path, err))
		s.preserveCorrupt(data)
		return
	}

	for i, st := range students {
		if strings.TrimSpace(st.ID) == "" {
			s.fail(fmt.Errorf("filestore: load %s: entry %d has no id", s.path, i))
			s.preserveCorrupt(data)
			return
		}
	}

	if students != nil {
		s.students = students
	}

	s.log.Debug("backing file loaded",
		slog.String("path", s.path),
		slog.String("codec", s.codec.Name()),
		slog.Int("count", len(s.students)))
}

func (s *Store) fail(err error) {
	s.loadErr = err
	s.log.Warn("could not load students, starting empty",
		slog.String("path", s.path),
		slog.String("error", err.Error()))
}

// preserveCorrupt copies an unparsable file aside so the next save does
// not destroy the only copy.
func (s *Store) preserveCorrupt(data []byte) {
	dst := s.path + corruptSuffix
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		s.log.Error("could not keep a copy of the malformed file",
			slog.String("path", dst),
			slog.String("error", err.Error()))
		return
	}
	s.log.Warn("malformed file copied aside", slog.String("path", dst))
}

// save writes the full collection to the backing file. Callers hold s.mu.
func (s *Store) save() error {
	data, err := s.codec.Encode(s.students)
	if err != nil {
		return fmt.Errorf("filestore: save: %w: %w", storage.ErrPersistence, err)
	}

	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("filestore: save: %w: %w", storage.ErrPersistence, err)
	}

	s.log.Debug("students saved", slog.String("path", s.path), slog.Int("count", len(s.students)))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	// CreateTemp uses 0600.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// indexOf returns the position of the first record with the given id, or
// -1. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.students, func(st types.Student) bool {
		return st.ID == id
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Add appends a new record and persists the collection.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Add(student types.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(student.ID) >= 0 {
		return fmt.Errorf("filestore: add %s: %w", student.ID, storage.ErrDuplicate)
	}

	s.students = append(s.students, student)
	if err := s.save(); err != nil {
		s.students = s.students[:len(s.students)-1]
		return err
	}

	s.log.Debug("student added", slog.String("id", student.ID))
	return nil
}

// FindByID returns the first record whose ID equals the trimmed id.
func (s *Store) FindByID(id string) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("filestore: find %q: %w", id, storage.ErrNotFound)
	}
	return s.students[i], nil
}

// FindByName returns every record whose name contains fragment, ignoring
// case, in registration order.
func (s *Store) FindByName(fragment string) ([]types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]types.Student, 0)
	for _, st := range s.students {
		if types.MatchesName(st.Name, fragment) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Update applies the allow-listed fields of changes to the record with the
// given id and persists the collection.
//
// The store does not validate values. It trusts the caller to have done so.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Update(id string, changes map[string]any) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("filestore: update %q: %w", id, storage.ErrNotFound)
	}

	previous := s.students[i]
	updated := previous
	if err := types.ApplyChanges(&updated, changes); err != nil {
		return types.Student{}, fmt.Errorf("filestore: update %q: %w", id, err)
	}

	s.students[i] = updated
	if err := s.save(); err != nil {
		s.students[i] = previous
		return types.Student{}, err
	}

	s.log.Debug("student updated", slog.String("id", updated.ID))
	return updated, nil
}

// Remove deletes the first record with the given id and persists the
// collection.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("filestore: remove %q: %w", id, storage.ErrNotFound)
	}

	removed := s.students[i]
	s.students = slices.Delete(s.students, i, i+1)
	if err := s.save(); err != nil {
		s.students = slices.Insert(s.students, i, removed)
		return err
	}

	s.log.Debug("student removed", slog.String("id", removed.ID))
	return nil
}

// All returns a copy of the collection in registration order.
func (s *Store) All() ([]types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.students), nil
}

// Count returns the number of records.
func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.students), nil
}

// Save writes the current collection to the backing file. Mutating calls
// already save; this is for callers that want to create the file up front.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save()
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close() error { return nil }

var _ storage.Storage = (*Store)(nil)
