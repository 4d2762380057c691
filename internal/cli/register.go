package cli

import (
	"context"
	"errors"

	"github.com/aanand-mishra/trackstudent/internal/types"
	"github.com/aanand-mishra/trackstudent/internal/validation"
)

const ageNotNumber = "Invalid age! It must be a number between 16 and 80."

func (a *App) register(ctx context.Context) error {
	a.heading("REGISTER STUDENT")

	var in validation.StudentInput
	var err error

	if in.Name, err = a.ask(ctx, "Full name:"); err != nil {
		return err
	}
	if in.Email, err = a.ask(ctx, "Email:"); err != nil {
		return err
	}
	if in.Course, err = a.ask(ctx, "Course:"); err != nil {
		return err
	}
	rawAge, err := a.ask(ctx, "Age:")
	if err != nil {
		return err
	}

	// A non-numeric age is reported together with the other fields'
	// problems, not instead of them.
	age, err := validation.ParseAge(rawAge)
	if err != nil {
		for _, msg := range a.textFieldMessages(in) {
			a.failure(msg)
		}
		a.failure(ageNotNumber)
		return nil
	}
	in.Age = age

	student, err := a.AddStudent(in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Messages {
				a.failure(msg)
			}
			return nil
		}
		a.failure(describe(err, student.ID))
		return nil
	}

	a.success("Student registered successfully!")
	a.printf("Generated ID: %s\n", student.ID)
	return nil
}

// textFieldMessages validates name, email and course on their own.
func (a *App) textFieldMessages(in validation.StudentInput) []string {
	fields := []struct {
		name  string
		value string
	}{
		{types.FieldName, in.Name},
		{types.FieldEmail, in.Email},
		{types.FieldCourse, in.Course},
	}

	var msgs []string
	for _, f := range fields {
		if err := a.validate.Field(f.name, f.value); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}
