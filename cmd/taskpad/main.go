package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"taskpad/internal/backup"
	"taskpad/internal/model"
	"taskpad/internal/service"
	"taskpad/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run owns the store handle so deferred cleanup survives every error
// path; main only translates its error into the exit code.
func run() error {
	var (
		configPath = flag.String("config", model.DefaultConfigPath(), "path to config file")
		exportFmt  = flag.String("export", "", "write a backup in the given format (json or csv)")
		importPath = flag.String("import", "", "import a JSON backup file")
		resolution = flag.String("resolution", "cancel", "cancel or migrate on version mismatch; preview parses without writing")
		replace    = flag.Bool("replace", false, "wipe existing data before importing (asks for confirmation)")
		purge      = flag.Bool("purge", false, "purge tasks completed past the retention window")
	)
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(cfg.Log.Level)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store at %s: %w", cfg.Database.Path, err)
	}
	defer st.Close()

	ctx := context.Background()

	user, err := st.EnsureUser(ctx, "local")
	if err != nil {
		return fmt.Errorf("initializing user: %w", err)
	}

	svc := service.New(st, user, log)
	ser := backup.New(st, user, log)

	switch {
	case *exportFmt != "":
		path, err := ser.WriteFile(ctx, cfg.Backup.Dir, cfg.Backup.FallbackDir, *exportFmt)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Println(path)

	case *importPath != "":
		if err := runImport(ctx, ser, *importPath, *resolution, *replace); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

	case *purge:
		window := time.Duration(cfg.Maintenance.PurgeAfterDays) * 24 * time.Hour
		n, err := svc.PurgeCompletedTasks(ctx, window)
		if err != nil {
			return fmt.Errorf("purge failed: %w", err)
		}
		fmt.Printf("purged %d tasks\n", n)

	default:
		flag.Usage()
	}
	return nil
}

func runImport(ctx context.Context, ser *backup.Serializer, path, resolution string, replace bool) error {
	var res backup.Resolution
	switch resolution {
	case "cancel":
		res = backup.ResolutionCancel
	case "migrate":
		res = backup.ResolutionMigrate
	case "preview":
		res = backup.ResolutionPreview
	default:
		return fmt.Errorf("unknown resolution %q", resolution)
	}

	if replace && !confirm("Replace ALL existing tasks and projects with the backup contents?") {
		fmt.Println("cancelled")
		return nil
	}

	content, err := backup.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := ser.ImportJSON(ctx, content, backup.ImportOptions{
		Resolution: res,
		Replace:    replace,
	})
	if err != nil {
		return err
	}

	if result.Preview != nil {
		fmt.Printf("preview (version %s, store unchanged): %d todos, %d projects\n",
			result.Preview.Version, len(result.Preview.Tasks), len(result.Preview.Projects))
		return nil
	}
	fmt.Printf("imported %d todos, %d projects\n", result.TasksImported, result.ProjectsImported)
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()
}
