package cli

import (
	"context"
)

func (a *App) search(ctx context.Context) error {
	a.heading("SEARCH STUDENT")
	a.println("1. Search by ID")
	a.println("2. Search by name")

	choice, err := a.ask(ctx, "Choose the search type:")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.searchByID(ctx)
	case "2":
		return a.searchByName(ctx)
	default:
		a.failure("Invalid option!")
		return nil
	}
}

func (a *App) searchByID(ctx context.Context) error {
	id, err := a.ask(ctx, "Enter the student ID:")
	if err != nil {
		return err
	}

	student, err := a.store.FindByID(id)
	if err != nil {
		a.failure(describe(err, id))
		return nil
	}

	a.println("\nStudent found:")
	a.println(student)
	return nil
}

func (a *App) searchByName(ctx context.Context) error {
	fragment, err := a.ask(ctx, "Enter the name (or part of it):")
	if err != nil {
		return err
	}

	students, err := a.store.FindByName(fragment)
	if err != nil {
		a.failure(describe(err, ""))
		return nil
	}
	if len(students) == 0 {
		a.failure("No students found!")
		return nil
	}

	a.printf("\n%d student(s) found:\n", len(students))
	for i, s := range students {
		a.printf("%d. %s\n", i+1, s)
	}
	return nil
}
