package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aanand-mishra/trackstudent/internal/config"
	"github.com/aanand-mishra/trackstudent/internal/storage"
	"github.com/aanand-mishra/trackstudent/internal/storage/filestore"
	"github.com/aanand-mishra/trackstudent/internal/storage/sqlite"
	"github.com/aanand-mishra/trackstudent/internal/types"
	"github.com/aanand-mishra/trackstudent/internal/validation"
)

// Options are the process-level collaborators of Execute.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// NewLogger builds the logger for the configured environment. Nil
	// means logs are discarded.
	NewLogger func(env string, w io.Writer) *slog.Logger

	// AppOptions are passed through to NewApp (tests set a clock here).
	AppOptions []Option
}

// session is what PersistentPreRunE builds and the commands share.
type session struct {
	opts       Options
	configPath string
	cfg        *config.Config
	log        *slog.Logger
	store      storage.Storage
	app        *App
}

// Execute runs the trackstudent command line with the given arguments.
func Execute(ctx context.Context, opts Options, args []string) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	// cobra falls back to os.Args for nil args.
	if args == nil {
		args = []string{}
	}

	s := &session{opts: opts}
	defer s.close()

	root := s.rootCmd()
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !(ctx.Err() != nil && errors.Is(err, ctx.Err())) {
		fmt.Fprintln(opts.Err, "Error:", err)
	}
	return err
}

func (s *session) close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.Error("closing storage", slog.String("error", err.Error()))
	}
}

// open loads the config, builds the logger and opens the storage backend.
func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	s.cfg = cfg

	if s.opts.NewLogger != nil {
		s.log = s.opts.NewLogger(cfg.Env, s.opts.Err)
	} else {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.log = s.log.With(slog.String("session", uuid.NewString()))

	store, err := openStorage(cfg, s.log, s.opts.Err)
	if err != nil {
		s.log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return err
	}
	s.store = store
	s.log.Debug("storage initialised",
		slog.String("backend", cfg.StorageBackend),
		slog.String("path", cfg.StoragePath))

	appOpts := append([]Option{
		WithLogger(s.log),
		WithInteractive(isTerminal(s.opts.In)),
	}, s.opts.AppOptions...)

	app, err := NewApp(store, cmd.InOrStdin(), cmd.OutOrStdout(), appOpts...)
	if err != nil {
		return err
	}
	s.app = app
	return nil
}

// openStorage selects the backend from the config. A file that could not
// be loaded is reported on w; the store still opens, empty.
func openStorage(cfg *config.Config, log *slog.Logger, w io.Writer) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		fs := filestore.New(cfg.StoragePath, filestore.WithLogger(log))
		if diag := fs.Diagnostic(); diag != nil {
			fmt.Fprintf(w, "Warning: %v\nStarting with an empty roster.\n", diag)
		}
		return fs, nil
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ─────────────────────────────────────────────────────────────────────────────
// Command tree
//
//	trackstudent                 interactive menu
//	trackstudent add             register a student
//	trackstudent find            search by --id or --name
//	trackstudent update <id>     change the flags that were given
//	trackstudent remove <id>     delete (asks unless --yes)
//	trackstudent report <kind>   roster | courses
// ─────────────────────────────────────────────────────────────────────────────

func (s *session) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trackstudent",
		Short: "Manage a roster of student records",
		Long: `TrackStudent keeps student records in a JSON or YAML file (or SQLite)
and offers an interactive menu plus subcommands for scripting.

Without a subcommand the interactive menu starts.`,
		SilenceUsage:  true,
		SilenceErrors: true, // printed by Execute, which skips interrupts
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.app.Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "",
		"path to the configuration YAML file (default: $CONFIG_PATH)")

	root.AddCommand(
		s.addCmd(),
		s.findCmd(),
		s.updateCmd(),
		s.removeCmd(),
		s.reportCmd(),
	)
	return root
}

func (s *session) addCmd() *cobra.Command {
	var in validation.StudentInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			student, err := s.app.AddStudent(in)
			if err != nil {
				return errors.New(describe(err, student.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Student registered: %s\n", student.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Course, "course", "", "course name")
	cmd.Flags().IntVar(&in.Age, "age", 0, "age (16-80)")
	for _, name := range []string{"name", "email", "course", "age"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (s *session) findCmd() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find students by --id or by --name fragment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("id") {
				student, err := s.app.store.FindByID(id)
				if err != nil {
					return errors.New(describe(err, id))
				}
				fmt.Fprintln(out, student)
				return nil
			}

			students, err := s.app.store.FindByName(name)
			if err != nil {
				return err
			}
			if len(students) == 0 {
				return errors.New("no students found")
			}
			for _, st := range students {
				fmt.Fprintln(out, st)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "exact student ID")
	cmd.Flags().StringVar(&name, "name", "", "case-insensitive part of the name")
	cmd.MarkFlagsMutuallyExclusive("id", "name")
	cmd.MarkFlagsOneRequired("id", "name")
	return cmd
}

func (s *session) updateCmd() *cobra.Command {
	var name, email, course string
	var age int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a student's name, email, course or age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes := make(map[string]any)
			if cmd.Flags().Changed(types.FieldName) {
				changes[types.FieldName] = name
			}
			if cmd.Flags().Changed(types.FieldEmail) {
				changes[types.FieldEmail] = email
			}
			if cmd.Flags().Changed(types.FieldCourse) {
				changes[types.FieldCourse] = course
			}
			if cmd.Flags().Changed(types.FieldAge) {
				changes[types.FieldAge] = age
			}
			if len(changes) == 0 {
				return errors.New("nothing to update: pass at least one of --name, --email, --course, --age")
			}

			updated, err := s.app.UpdateStudent(args[0], changes)
			if err != nil {
				return errors.New(describe(err, args[0]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, types.FieldName, "", "new full name")
	cmd.Flags().StringVar(&email, types.FieldEmail, "", "new email address")
	cmd.Flags().StringVar(&course, types.FieldCourse, "", "new course")
	cmd.Flags().IntVar(&age, types.FieldAge, 0, "new age (16-80)")
	return cmd
}

func (s *session) removeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			student, err := s.app.store.FindByID(args[0])
			if err != nil {
				return errors.New(describe(err, args[0]))
			}

			if !yes {
				fmt.Fprintf(out, "Student found: %s\n", student)
				ok, err := Confirm(cmd.Context(), s.app.reader, "Are you sure you want to remove this student?", out)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}

			if err := s.app.RemoveStudent(student.ID); err != nil {
				return errors.New(describe(err, student.ID))
			}
			fmt.Fprintf(out, "Student removed: %s\n", student.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (s *session) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "report <roster|courses>",
		Short:     "Print the full roster or the per-course summary",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{ReportRoster, ReportCourses},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := s.app.Report(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
