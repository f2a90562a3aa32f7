package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/burrow/internal/cli"
	"github.com/alexanderramin/burrow/internal/config"
	"github.com/alexanderramin/burrow/internal/db"
	"github.com/alexanderramin/burrow/internal/domain"
	"github.com/alexanderramin/burrow/internal/logging"
	"github.com/alexanderramin/burrow/internal/repository"
	"github.com/alexanderramin/burrow/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	configDir := filepath.Join(home, ".burrow")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	cfg, err := config.LoadOrCreate(filepath.Join(configDir, config.DefaultConfigFileName))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// DB path: env var beats config; relative config paths live under ~/.burrow
	dbPath := os.Getenv("BURROW_DB")
	if dbPath == "" {
		dbPath = cfg.DBPath
		if !filepath.IsAbs(dbPath) {
			dbPath = filepath.Join(configDir, dbPath)
		}
	}

	log := logging.New(os.Getenv("BURROW_DEBUG") != "")
	defer log.Sync()

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := repository.NewSQLiteSnapshotStore(database, log)

	defaultView, err := domain.ParseView(cfg.DefaultView)
	if err != nil {
		defaultView = domain.ViewInbox
	}

	app := &cli.App{
		Tasks:       service.NewTaskServiceConfig(store, nil, cfg.UpcomingDays),
		DefaultView: defaultView,
	}

	// Detect interactive terminal for the TUI-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
