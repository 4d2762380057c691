// Package validation holds the rules a student's fields must pass before
// they reach the store. The store trusts its callers; this package is what
// makes that trust safe.
//
// Rules are expressed as go-playground/validator tags on StudentInput,
// with two custom tags registered by New:
//
//	personname   : letters only once spaces are removed (any script)
//	studentemail : local@domain.tld
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Limits shared by the tags below and the messages shown to users.
const (
	MinAge          = 16
	MaxAge          = 80
	MinNameLength   = 2
	MinCourseLength = 3
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]+$`)

// ErrInvalidAge is returned by ParseAge for input that is not an integer.
var ErrInvalidAge = errors.New("age must be a whole number")

// StudentInput is the raw data for a new student, before an ID exists.
type StudentInput struct {
	Name   string `validate:"required,min=2,personname"`
	Email  string `validate:"required,studentemail"`
	Course string `validate:"required,min=3"`
	Age    int    `validate:"min=16,max=80"`
}

// Trimmed returns a copy with surrounding whitespace removed from every
// text field.
func (in StudentInput) Trimmed() StudentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Course = strings.TrimSpace(in.Course)
	return in
}

// fieldTags maps the updatable field names to the tag of the matching
// StudentInput field, for single-field checks.
var fieldTags = map[string]string{
	"name":   "required,min=2,personname",
	"email":  "required,studentemail",
	"course": "required,min=3",
	"age":    "min=16,max=80",
}

// Validator wraps a configured *validator.Validate.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("personname", validatePersonName)
	_ = v.RegisterValidation("studentemail", validateEmail)
	return &Validator{v: v}
}

func validatePersonName(fl validator.FieldLevel) bool {
	letters := strings.ReplaceAll(fl.Field().String(), " ", "")
	if letters == "" {
		return false
	}
	for _, r := range letters {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// Student validates in after trimming it and returns the trimmed copy.
// A failure is a validator.ValidationErrors; pass it to Messages.
func (val *Validator) Student(in StudentInput) (StudentInput, error) {
	in = in.Trimmed()
	if err := val.v.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

// Field validates one updatable field ("name", "email", "course", "age").
// Text values are trimmed first. Unknown field names are an error.
func (val *Validator) Field(field string, value any) error {
	tag, ok := fieldTags[field]
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	if err := val.v.Var(value, tag); err != nil {
		return errors.New(fieldMessage(field, firstTag(err)))
	}
	return nil
}

// Name, Email, Course and Age report whether a single value is valid.
func (val *Validator) Name(name string) bool     { return val.Field("name", name) == nil }
func (val *Validator) Email(email string) bool   { return val.Field("email", email) == nil }
func (val *Validator) Course(course string) bool { return val.Field("course", course) == nil }
func (val *Validator) Age(age int) bool          { return val.Field("age", age) == nil }

// ParseAge converts user input to an age. It does not check the range.
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidAge
	}
	return age, nil
}

func firstTag(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs[0].ActualTag()
	}
	return ""
}
