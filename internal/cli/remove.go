package cli

import (
	"context"
)

func (a *App) remove(ctx context.Context) error {
	a.heading("REMOVE STUDENT")

	id, err := a.ask(ctx, "Enter the student ID:")
	if err != nil {
		return err
	}

	student, err := a.store.FindByID(id)
	if err != nil {
		a.failure(describe(err, id))
		return nil
	}

	a.printf("\nStudent found: %s\n", student)
	ok, err := Confirm(ctx, a.reader, "Are you sure you want to remove this student?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Operation cancelled.")
		return nil
	}

	if err := a.RemoveStudent(student.ID); err != nil {
		a.failure(describe(err, student.ID))
		return nil
	}

	a.success("Student removed successfully!")
	return nil
}
