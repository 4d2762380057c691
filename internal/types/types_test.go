package types

import (
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^STU\d{14}$`)

func TestNewStudent(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	s := NewStudent(GenerateID(now), "João Silva", "joao@gmail.com", "ADS", 20, now)

	assert.Equal(t, "STU20240309140507", s.ID)
	assert.Equal(t, "João Silva", s.Name)
	assert.Equal(t, "joao@gmail.com", s.Email)
	assert.Equal(t, "ADS", s.Course)
	assert.Equal(t, 20, s.Age)
	assert.Equal(t, "2024-03-09", s.CreatedAt)
	assert.Regexp(t, idPattern, s.ID)
}

func TestStudentString(t *testing.T) {
	s := Student{ID: "STU20240101000000", Name: "Ana", Email: "ana@x.com", Course: "ADS", Age: 20}
	assert.Equal(t,
		"ID: STU20240101000000 | Name: Ana | Course: ADS | Email: ana@x.com | Age: 20",
		s.String())
}

func TestApplyChanges(t *testing.T) {
	base := Student{
		ID: "STU20240101000000", Name: "Ana", Email: "ana@x.com",
		Course: "ADS", Age: 20, CreatedAt: "2024-01-01",
	}

	t.Run("age only", func(t *testing.T) {
		s := base
		require.NoError(t, ApplyChanges(&s, map[string]any{"age": 30}))

		want := base
		want.Age = 30
		assert.Equal(t, want, s)
	})

	t.Run("unknown and immutable keys are ignored", func(t *testing.T) {
		s := base
		err := ApplyChanges(&s, map[string]any{
			"id":         "STU99999999999999",
			"created_at": "1999-01-01",
			"nickname":   "Aninha",
			"course":     "Medicina",
		})
		require.NoError(t, err)

		want := base
		want.Course = "Medicina"
		assert.Equal(t, want, s)
	})

	t.Run("int64 age", func(t *testing.T) {
		s := base
		require.NoError(t, ApplyChanges(&s, map[string]any{"age": int64(42)}))
		assert.Equal(t, 42, s.Age)
	})

	t.Run("unsigned ages", func(t *testing.T) {
		for _, age := range []any{uint(30), uint8(30), uint16(30), uint32(30), uint64(30), uintptr(30)} {
			s := base
			require.NoError(t, ApplyChanges(&s, map[string]any{"age": age}), "%T", age)
			assert.Equal(t, 30, s.Age)
		}
	})

	t.Run("age out of int range", func(t *testing.T) {
		s := base
		err := ApplyChanges(&s, map[string]any{"age": uint64(math.MaxUint64)})
		require.ErrorIs(t, err, ErrInvalidChange)
		assert.Equal(t, base, s)
	})

	t.Run("wrong type leaves record untouched", func(t *testing.T) {
		s := base
		err := ApplyChanges(&s, map[string]any{"name": "Bia", "age": "thirty"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidChange))
		assert.Equal(t, base, s)
	})
}

func TestMatchesName(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     bool
	}{
		{"Ana", "an", true},
		{"Ana", "AN", true},
		{"Mariana Souza", "ana s", true},
		{"Ana", "", false},
		{"Ana", "   ", false},
		{"Ana", " na ", true},
		{"Bruno", "an", false},
		{"ÉLIO", "élio", true},
	}

	for _, tc := range tests {
		t.Run(tc.name+"/"+tc.fragment, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesName(tc.name, tc.fragment))
		})
	}
}
