package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aanand-mishra/trackstudent/internal/report"
	"github.com/aanand-mishra/trackstudent/internal/storage"
	"github.com/aanand-mishra/trackstudent/internal/types"
	"github.com/aanand-mishra/trackstudent/internal/validation"
)

// App holds everything a menu action or subcommand needs.
type App struct {
	store       storage.Storage
	validate    *validation.Validator
	reports     *report.Generator
	ids         *types.IDGenerator
	now         func() time.Time
	reader      *bufio.Reader
	out         io.Writer
	log         *slog.Logger
	style       styles
	interactive bool
}

// Option configures an App.
type Option func(*App)

// WithClock sets the clock used for IDs, creation dates and report dates.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithInteractive makes the menu pause for Enter after each action.
func WithInteractive(on bool) Option {
	return func(a *App) { a.interactive = on }
}

// NewApp builds an App reading from in and writing to out. The ID
// generator is seeded with the IDs already stored.
func NewApp(store storage.Storage, in io.Reader, out io.Writer, opts ...Option) (*App, error) {
	a := &App{
		store:    store,
		validate: validation.New(),
		now:      time.Now,
		reader:   bufio.NewReader(in),
		out:      out,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		style:    newStyles(out),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reports = report.New(a.now)
	a.ids = types.NewIDGenerator(a.now)

	existing, err := store.All()
	if err != nil {
		return nil, fmt.Errorf("cli: read existing students: %w", err)
	}
	for _, s := range existing {
		a.ids.Observe(s.ID)
	}

	return a, nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) success(msg string) {
	a.println(a.style.ok.Render(msg))
}

func (a *App) failure(msg string) {
	a.println(a.style.fail.Render(msg))
}

func (a *App) ask(ctx context.Context, prompt string) (string, error) {
	return GetSimpleText(ctx, a.reader, prompt, a.out)
}

// ─────────────────────────────────────────────────────────────────────────────
// Operations shared by the menu and the subcommands.
// ─────────────────────────────────────────────────────────────────────────────

// ValidationError carries the user-facing messages of a rejected input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// AddStudent validates in, assigns a new ID and stores the student.
// When the store rejects the record, the record is still returned so the
// caller can name its ID.
func (a *App) AddStudent(in validation.StudentInput) (types.Student, error) {
	in, err := a.validate.Student(in)
	if err != nil {
		return types.Student{}, &ValidationError{Messages: validation.Messages(err)}
	}

	student := types.NewStudent(a.ids.Next(), in.Name, in.Email, in.Course, in.Age, a.now())
	if err := a.store.Add(student); err != nil {
		a.log.Error("add student failed", slog.String("id", student.ID), slog.String("error", err.Error()))
		return student, err
	}

	a.log.Info("student registered", slog.String("id", student.ID))
	return student, nil
}

// UpdateStudent validates every allow-listed change, trims text values and
// applies them. Keys outside the allow-list are dropped.
func (a *App) UpdateStudent(id string, changes map[string]any) (types.Student, error) {
	clean := make(map[string]any, len(changes))
	var msgs []string
	for _, field := range types.UpdatableFields {
		value, ok := changes[field]
		if !ok {
			continue
		}
		if s, isString := value.(string); isString {
			value = strings.TrimSpace(s)
		}
		if err := a.validate.Field(field, value); err != nil {
			msgs = append(msgs, err.Error())
			continue
		}
		clean[field] = value
	}
	if len(msgs) > 0 {
		return types.Student{}, &ValidationError{Messages: msgs}
	}

	updated, err := a.store.Update(id, clean)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.log.Error("update student failed", slog.String("id", id), slog.String("error", err.Error()))
		}
		return types.Student{}, err
	}

	a.log.Info("student updated", slog.String("id", updated.ID))
	return updated, nil
}

// RemoveStudent deletes the student with the given ID.
func (a *App) RemoveStudent(id string) error {
	if err := a.store.Remove(id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.log.Error("remove student failed", slog.String("id", id), slog.String("error", err.Error()))
		}
		return err
	}
	a.log.Info("student removed", slog.String("id", strings.TrimSpace(id)))
	return nil
}

// describe turns a store error into the message shown to the user.
func describe(err error, id string) string {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "Student not found!"
	case errors.Is(err, storage.ErrDuplicate):
		return fmt.Sprintf("A student with ID %s already exists.", id)
	case errors.Is(err, storage.ErrPersistence):
		return "Could not save changes: " + err.Error()
	default:
		var verr *ValidationError
		if errors.As(err, &verr) {
			return strings.Join(verr.Messages, "\n")
		}
		return "Error: " + err.Error()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Run starts the interactive menu and blocks until the user chooses Exit,
// input ends, or ctx is cancelled. Cancellation is noticed while a prompt
// is waiting for input, and Run returns ctx.Err().
// ─────────────────────────────────────────────────────────────────────────────
func (a *App) Run(ctx context.Context) error {
	a.println(a.style.title.Render("=== TRACKSTUDENT - Student Management System ==="))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.showMenu()
		choice, err := a.ask(ctx, "Choose an option:")
		if errors.Is(err, io.EOF) {
			a.println()
			return nil
		}
		if err != nil {
			return err
		}

		if choice == "0" {
			a.println("Thank you for using TrackStudent!")
			return nil
		}

		if err := a.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				a.println()
				return nil
			}
			return err
		}

		if a.interactive {
			if _, err := a.ask(ctx, "Press Enter to continue..."); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}
