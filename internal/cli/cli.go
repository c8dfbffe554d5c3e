// Package cli provides the command-line interface for mcpsync.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/klauern/mcpsync/internal/backup"
	"github.com/klauern/mcpsync/internal/config"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/registry"
	"github.com/klauern/mcpsync/internal/sync"
	"github.com/klauern/mcpsync/internal/ui"
	"github.com/klauern/mcpsync/internal/util"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "mcpsync",
		Usage:   "Synchronize MCP server configurations across AI clients",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			return ctx, configureLogging(cmd)
		},
		Commands: []*cli.Command{
			initCommand(),
			statusCommand(),
			listCommand(),
			addCommand(),
			removeCommand(),
			syncCommand(),
			backupCommand(),
			restoreCommand(),
			tuiCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// configureColors sets up color output based on CLI flags.
func configureColors(cmd *cli.Command) {
	if cmd.Bool("no-color") {
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level based on CLI flags.
func configureLogging(cmd *cli.Command) error {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}

// appState bundles the collaborators every command needs.
type appState struct {
	cfg      *config.Config
	registry *registry.Registry
	backups  *backup.Store
	engine   *sync.Engine
}

// loadState builds the registry, backup store, and engine from the user
// configuration.
func loadState() (*appState, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	reg := registry.New(cfg.PathOverrides())
	store := backup.NewStoreAt(cfg.Backup.Location, util.MetadataDir())
	return &appState{
		cfg:      cfg,
		registry: reg,
		backups:  store,
		engine:   sync.New(reg, store),
	}, nil
}
