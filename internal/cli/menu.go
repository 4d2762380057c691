package cli

import (
	"context"
	"strings"
)

var mainMenu = []string{
	"1. Register student",
	"2. Search student",
	"3. Update student",
	"4. Remove student",
	"5. Reports",
	"0. Exit",
}

func (a *App) showMenu() {
	a.println()
	a.println(rule())
	a.println(a.style.title.Render("MAIN MENU"))
	a.println(rule())
	a.println(strings.Join(mainMenu, "\n"))
	a.println(rule())
}

// dispatch runs the action for a menu choice. Actions report store
// failures to the user themselves; a returned error is an input error.
func (a *App) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return a.register(ctx)
	case "2":
		return a.search(ctx)
	case "3":
		return a.update(ctx)
	case "4":
		return a.remove(ctx)
	case "5":
		return a.generateReports(ctx)
	default:
		a.failure("Invalid option! Try again.")
		return nil
	}
}

func (a *App) heading(title string) {
	a.println()
	a.println(a.style.title.Render("=== " + title + " ==="))
}
