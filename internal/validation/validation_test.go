package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	v := New()
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"A", false},
		{"Li", true},
		{"Ana", true},
		{"Ana123", false},
		{"Ana@", false},
		{"João Silva", true},
		{"  Li  ", true},
		{"   ", false},
		{"A B", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Name(tc.in))
		})
	}
}

func TestEmail(t *testing.T) {
	v := New()
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"a@b.", false},
		{"email.com", false},
		{"ana@", false},
		{"ana@gmail", false},
		{"a@b.c", true},
		{"a@b.cd", true},
		{"joao@gmail.com", true},
		{" joao@gmail.com ", true},
		{"jo ao@gmail.com", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Email(tc.in))
		})
	}
}

func TestCourse(t *testing.T) {
	v := New()
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"TI", false},
		{" TI ", false},
		{"ADS", true},
		{"Medicina", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, v.Course(tc.in))
		})
	}
}

func TestAge(t *testing.T) {
	v := New()
	tests := []struct {
		in   int
		want bool
	}{
		{15, false},
		{16, true},
		{17, true},
		{80, true},
		{81, false},
		{-1, false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, v.Age(tc.in), "age %d", tc.in)
	}
}

func TestParseAge(t *testing.T) {
	age, err := ParseAge(" 20 ")
	require.NoError(t, err)
	assert.Equal(t, 20, age)

	for _, in := range []string{"vinte", "", "20.5", "2O"} {
		_, err := ParseAge(in)
		assert.ErrorIs(t, err, ErrInvalidAge, "input %q", in)
	}
}

func TestStudent(t *testing.T) {
	v := New()

	got, err := v.Student(StudentInput{Name: "  Ana ", Email: "ana@x.com ", Course: " ADS", Age: 20})
	require.NoError(t, err)
	assert.Equal(t, StudentInput{Name: "Ana", Email: "ana@x.com", Course: "ADS", Age: 20}, got)

	_, err = v.Student(StudentInput{Name: "A1", Email: "bad", Course: "TI", Age: 90})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 4)

	msgs := Messages(err)
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0], "Invalid name")
	assert.Contains(t, msgs[1], "Invalid email")
	assert.Contains(t, msgs[2], "Invalid course")
	assert.Contains(t, msgs[3], "between 16 and 80")
}

func TestField(t *testing.T) {
	v := New()

	assert.NoError(t, v.Field("course", "Direito"))
	assert.EqualError(t, v.Field("age", 12), "Invalid age: must be between 16 and 80.")
	assert.Error(t, v.Field("id", "STU1"))
}

func TestMessages_NonValidationError(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{"boom"}, Messages(errors.New("boom")))
}
