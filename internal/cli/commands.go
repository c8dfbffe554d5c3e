// Package cli provides command definitions for mcpsync.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/mcpsync/internal/config"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/ui"
	"github.com/klauern/mcpsync/internal/util"
)

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a default configuration file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := config.FilePath()
			if util.PathExists(path) && !cmd.Bool("force") {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}
			if err := config.Default().SaveToPath(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println(ui.StatusSuccess("wrote " + path))
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show each client's config location and state",
		Action: func(_ context.Context, _ *cli.Command) error {
			state, err := loadState()
			if err != nil {
				return err
			}

			fmt.Println(ui.Header("Clients"))
			for _, cc := range state.registry.Discover() {
				var marker string
				switch {
				case cc.Exists:
					marker = ui.StatusSuccess("")
				case cc.Installed:
					marker = ui.StatusPending("")
				default:
					marker = ui.StatusSkipped("")
				}

				count := ""
				if cc.Exists {
					if servers, err := state.engine.List(cc.Client, ""); err == nil {
						count = fmt.Sprintf(" (%d servers)", len(servers))
					} else {
						count = " " + ui.Warning("(unreadable)")
					}
				}
				fmt.Printf("  %s %-15s %s%s\n", marker, cc.Client, ui.Dim(cc.Path), count)
			}
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List MCP servers configured for a client",
		UsageText: "mcpsync list [client] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Only show servers whose name contains this string",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			state, err := loadState()
			if err != nil {
				return err
			}

			clients := model.AllClients()
			if cmd.Args().Len() > 0 {
				client, err := model.ParseClient(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				clients = []model.Client{client}
			}

			for _, client := range clients {
				c, err := state.registry.Resolve(client)
				if err != nil {
					return err
				}
				if !c.Detect() && cmd.Args().Len() == 0 {
					continue
				}

				servers, err := state.engine.List(client, cmd.String("filter"))
				if err != nil {
					fmt.Println(ui.StatusError(fmt.Sprintf("%s: %v", client, err)))
					continue
				}

				fmt.Printf("%s %s\n", ui.Header(client.DisplayName()), ui.Dim("("+c.Path()+")"))
				if len(servers) == 0 {
					fmt.Println(ui.Dim("  no servers"))
					continue
				}
				for _, s := range servers {
					fmt.Printf("  %s\n", formatServer(s))
				}
			}
			return nil
		},
	}
}

// formatServer renders one server as a single line.
func formatServer(s model.Server) string {
	target := strings.TrimSpace(s.Command + " " + strings.Join(s.Args, " "))
	if s.Type.IsRemote() {
		target = s.URL
	}

	line := fmt.Sprintf("%s  %s  %s", ui.Bold(s.Name), ui.Info(string(s.Type)), target)
	if !s.Enabled {
		line += " " + ui.Dim("[disabled]")
	}
	if s.Trust {
		line += " " + ui.Warning("[trusted]")
	}
	return line
}
