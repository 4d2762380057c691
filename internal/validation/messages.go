package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Messages converts a validation error into human-readable sentences, one
// per failing field.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. Each is turned into a plain English sentence naming the
// rule the user broke. Errors that are not ValidationErrors come back as
// their own message.
// ─────────────────────────────────────────────────────────────────────────────
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fieldMessage(strings.ToLower(e.Field()), e.ActualTag()))
	}
	return msgs
}

func fieldMessage(field, tag string) string {
	switch field {
	case "name":
		return fmt.Sprintf("Invalid name: use at least %d characters, letters and spaces only.", MinNameLength)
	case "email":
		return "Invalid email: use the format name@domain.tld."
	case "course":
		return fmt.Sprintf("Invalid course: use at least %d characters.", MinCourseLength)
	case "age":
		return fmt.Sprintf("Invalid age: must be between %d and %d.", MinAge, MaxAge)
	}

	// Catch-all for fields added later.
	switch tag {
	case "required":
		return fmt.Sprintf("field %s is required", field)
	default:
		return fmt.Sprintf("field %s is invalid", field)
	}
}
