package cli

import (
	"context"
	"fmt"
)

// Report kinds accepted by the report subcommand.
const (
	ReportRoster  = "roster"
	ReportCourses = "courses"
)

func (a *App) generateReports(ctx context.Context) error {
	a.heading("REPORTS")
	a.println("1. All students")
	a.println("2. Students per course")

	choice, err := a.ask(ctx, "Choose the report type:")
	if err != nil {
		return err
	}

	var kind string
	switch choice {
	case "1":
		kind = ReportRoster
	case "2":
		kind = ReportCourses
	default:
		a.failure("Invalid option!")
		return nil
	}

	text, err := a.Report(kind)
	if err != nil {
		a.failure(describe(err, ""))
		return nil
	}
	a.println(text)
	return nil
}

// Report renders the roster or the per-course summary.
func (a *App) Report(kind string) (string, error) {
	students, err := a.store.All()
	if err != nil {
		return "", err
	}

	switch kind {
	case ReportRoster:
		return a.reports.Roster(students), nil
	case ReportCourses:
		return a.reports.CourseReport(students), nil
	default:
		return "", fmt.Errorf("unknown report %q", kind)
	}
}
