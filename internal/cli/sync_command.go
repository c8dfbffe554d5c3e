package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/sync"
	"github.com/klauern/mcpsync/internal/ui"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Copy MCP servers from one client to others",
		UsageText: "mcpsync sync --from <client> [--to <client>...] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Aliases:  []string{"f"},
				Usage:    "Source client to read servers from",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "to",
				Aliases: []string{"t"},
				Usage:   "Target client (repeatable; defaults to every other detected client)",
			},
			&cli.StringSliceFlag{
				Name:    "servers",
				Aliases: []string{"s"},
				Usage:   "Only sync these servers (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "Replace conflicting entries on targets",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without writing anything",
			},
			&cli.BoolFlag{
				Name:  "backup",
				Usage: "Snapshot each target before writing",
				Value: true,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			state, err := loadState()
			if err != nil {
				return err
			}

			source, err := model.ParseClient(cmd.String("from"))
			if err != nil {
				return err
			}

			targets, err := resolveTargets(state, source, cmd.StringSlice("to"))
			if err != nil {
				return err
			}

			opts := sync.DefaultOptions()
			opts.Servers = cmd.StringSlice("servers")
			opts.Overwrite = cmd.Bool("overwrite") || state.cfg.Sync.Overwrite
			opts.DryRun = cmd.Bool("dry-run")
			opts.Backup = state.cfg.Sync.AutoBackup
			if cmd.IsSet("backup") {
				opts.Backup = cmd.Bool("backup")
			}

			report, err := state.engine.Sync(source, targets, opts)
			if err != nil {
				return err
			}

			fmt.Print(report.Summary())
			if !report.Success() {
				return fmt.Errorf("%d target(s) failed", len(report.Failed()))
			}
			if !report.DryRun {
				fmt.Println(ui.StatusSuccess("sync complete"))
			}
			return nil
		},
	}
}

// resolveTargets turns --to flags into clients. With no flags the configured
// default targets apply, and failing that every other detected client.
func resolveTargets(state *appState, source model.Client, names []string) ([]model.Client, error) {
	if len(names) == 0 {
		names = state.cfg.Sync.DefaultTargets
	}

	if len(names) > 0 {
		targets := make([]model.Client, 0, len(names))
		for _, name := range names {
			client, err := model.ParseClient(name)
			if err != nil {
				return nil, err
			}
			if client == source {
				continue
			}
			targets = append(targets, client)
		}
		return targets, nil
	}

	var targets []model.Client
	for _, c := range state.registry.Available() {
		if c.Client() == source {
			continue
		}
		targets = append(targets, c.Client())
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no sync targets: pass --to or install another client")
	}
	return targets, nil
}
