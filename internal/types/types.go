// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// storage backends, validation, reports and the CLI can all import types
// without depending on each other.
package types

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the layout of Student.CreatedAt ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// ErrInvalidChange is returned by ApplyChanges when a recognised field is
// given a value of the wrong type.
var ErrInvalidChange = errors.New("invalid change")

// Student represents a student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..." / yaml:"..." control how the field appears in the
//     backing file. The field order below IS the serialized order:
//     id, name, email, course, age, created_at.
//
//  2. ID and CreatedAt are assigned once by NewStudent. Loading a file
//     restores them as stored; they are never regenerated.
type Student struct {
	ID        string `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	Email     string `json:"email"      yaml:"email"`
	Course    string `json:"course"     yaml:"course"`
	Age       int    `json:"age"        yaml:"age"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// NewStudent builds a record with the given id and a creation date taken
// from now. Field values are stored as given; validation is the caller's job.
func NewStudent(id, name, email, course string, age int, now time.Time) Student {
	return Student{
		ID:        id,
		Name:      name,
		Email:     email,
		Course:    course,
		Age:       age,
		CreatedAt: now.Format(DateLayout),
	}
}

// String returns the single labeled line used by reports and search results.
func (s Student) String() string {
	return fmt.Sprintf("ID: %s | Name: %s | Course: %s | Email: %s | Age: %d",
		s.ID, s.Name, s.Course, s.Email, s.Age)
}

// ─────────────────────────────────────────────────────────────────────────────
// Updatable fields.
//
// Only these keys can be changed after creation. Anything else in a change
// set (including "id" and "created_at") is silently ignored.
// ─────────────────────────────────────────────────────────────────────────────
const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldCourse = "course"
	FieldAge    = "age"
)

// UpdatableFields lists the allow-listed keys in display order.
var UpdatableFields = []string{FieldName, FieldEmail, FieldCourse, FieldAge}

// ApplyChanges copies the allow-listed entries of changes onto s.
//
// The change set is checked in full before s is touched, so a wrong-typed
// value leaves the record exactly as it was.
func ApplyChanges(s *Student, changes map[string]any) error {
	updated := *s

	for key, value := range changes {
		switch key {
		case FieldName:
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidChange, key, value)
			}
			updated.Name = v
		case FieldEmail:
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidChange, key, value)
			}
			updated.Email = v
		case FieldCourse:
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidChange, key, value)
			}
			updated.Course = v
		case FieldAge:
			v, ok := toInt(value)
			if !ok {
				return fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidChange, key, value)
			}
			updated.Age = v
		}
	}

	*s = updated
	return nil
}

// toInt converts any Go integer kind to int. Values that do not fit in
// an int are rejected rather than truncated.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return fromUint(uint64(v))
	case uint64:
		return fromUint(v)
	case uintptr:
		return fromUint(uint64(v))
	default:
		return 0, false
	}
}

func fromUint(v uint64) (int, bool) {
	if v > math.MaxInt {
		return 0, false
	}
	return int(v), true
}

// MatchesName reports whether fragment occurs in name, ignoring case.
// An empty (or all-space) fragment matches nothing.
func MatchesName(name, fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(fragment))
}
