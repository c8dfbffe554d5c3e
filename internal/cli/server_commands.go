package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/ui"
)

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add an MCP server to a client's config",
		UsageText: "mcpsync add <client> <name> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "Executable for stdio servers",
			},
			&cli.StringSliceFlag{
				Name:    "arg",
				Aliases: []string{"a"},
				Usage:   "Command argument (repeatable, in order)",
			},
			&cli.StringSliceFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Environment variable as KEY=VALUE (repeatable)",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Endpoint URL for sse/http servers",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Server type: stdio, sse, or http",
			},
			&cli.StringFlag{
				Name:  "cwd",
				Usage: "Working directory for the server process",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Request timeout in milliseconds",
			},
			&cli.BoolFlag{
				Name:  "trust",
				Usage: "Let the client run tool calls without confirmation",
			},
			&cli.StringFlag{
				Name:  "description",
				Usage: "Free-form description",
			},
			&cli.BoolFlag{
				Name:  "disabled",
				Usage: "Add the server in a disabled state",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Replace an existing server with the same name",
			},
			&cli.BoolFlag{
				Name:  "no-backup",
				Usage: "Skip the pre-change backup",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected <client> <name>, got %d arguments", cmd.Args().Len())
			}
			client, err := model.ParseClient(cmd.Args().Get(0))
			if err != nil {
				return err
			}

			server, err := serverFromFlags(cmd.Args().Get(1), cmd)
			if err != nil {
				return err
			}

			state, err := loadState()
			if err != nil {
				return err
			}

			withBackup := state.cfg.Sync.AutoBackup && !cmd.Bool("no-backup")
			if err := state.engine.Add(client, server, cmd.Bool("force"), withBackup); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("added %s to %s", server.Name, client.DisplayName())))
			return nil
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove an MCP server from a client's config",
		UsageText: "mcpsync remove <client> <name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-backup",
				Usage: "Skip the pre-change backup",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected <client> <name>, got %d arguments", cmd.Args().Len())
			}
			client, err := model.ParseClient(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			name := cmd.Args().Get(1)

			state, err := loadState()
			if err != nil {
				return err
			}

			withBackup := state.cfg.Sync.AutoBackup && !cmd.Bool("no-backup")
			if err := state.engine.Remove(client, name, withBackup); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("removed %s from %s", name, client.DisplayName())))
			return nil
		},
	}
}

// serverFromFlags builds a canonical server from the add command's flags.
// The type is inferred when omitted: sse if a URL was given, stdio otherwise.
func serverFromFlags(name string, cmd *cli.Command) (model.Server, error) {
	serverType := model.ServerType(cmd.String("type"))
	if serverType == "" {
		serverType = model.ServerTypeStdio
		if cmd.String("url") != "" {
			serverType = model.ServerTypeSSE
		}
	}

	env, err := parseEnvFlags(cmd.StringSlice("env"))
	if err != nil {
		return model.Server{}, err
	}

	return model.Server{
		Name:        name,
		Type:        serverType,
		Command:     cmd.String("command"),
		Args:        cmd.StringSlice("arg"),
		Env:         env,
		WorkingDir:  cmd.String("cwd"),
		URL:         cmd.String("url"),
		Description: cmd.String("description"),
		Enabled:     !cmd.Bool("disabled"),
		Trust:       cmd.Bool("trust"),
		TimeoutMS:   int(cmd.Int("timeout")),
	}, nil
}

// parseEnvFlags turns KEY=VALUE pairs into a map.
func parseEnvFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env %q: expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}
