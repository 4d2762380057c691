package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aanand-mishra/trackstudent/internal/types"
	"github.com/aanand-mishra/trackstudent/internal/validation"
)

func (a *App) update(ctx context.Context) error {
	a.heading("UPDATE STUDENT")

	id, err := a.ask(ctx, "Enter the student ID:")
	if err != nil {
		return err
	}

	student, err := a.store.FindByID(id)
	if err != nil {
		a.failure(describe(err, id))
		return nil
	}

	changes, err := a.collectChanges(ctx, student)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		a.println("No changes were made.")
		return nil
	}

	if _, err := a.UpdateStudent(student.ID, changes); err != nil {
		a.failure(describe(err, student.ID))
		return nil
	}

	a.success("Student updated successfully!")
	return nil
}

// collectChanges prompts for every updatable field. A blank answer keeps
// the current value, and so does an invalid one, with a message.
func (a *App) collectChanges(ctx context.Context, current types.Student) (map[string]any, error) {
	a.printf("\nCurrent data: %s\n", current)
	a.println("Leave blank to keep the current value.")

	changes := make(map[string]any)

	textFields := []struct {
		field string
		value string
	}{
		{types.FieldName, current.Name},
		{types.FieldEmail, current.Email},
		{types.FieldCourse, current.Course},
	}
	for _, f := range textFields {
		answer, err := a.ask(ctx, fmt.Sprintf("New %s (%s):", f.field, f.value))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			continue
		}
		if err := a.validate.Field(f.field, answer); err != nil {
			a.failure(err.Error() + " Keeping the current value.")
			continue
		}
		changes[f.field] = answer
	}

	answer, err := a.ask(ctx, fmt.Sprintf("New age (%d):", current.Age))
	if err != nil {
		return nil, err
	}
	if answer = strings.TrimSpace(answer); answer != "" {
		age, err := validation.ParseAge(answer)
		switch {
		case err != nil:
			a.failure("Age must be a number! Keeping the current age.")
		case !a.validate.Age(age):
			a.failure("Invalid age! Keeping the current age.")
		default:
			changes[types.FieldAge] = age
		}
	}

	return changes, nil
}
