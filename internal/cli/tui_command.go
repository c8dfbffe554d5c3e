package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/mcpsync/internal/ui"
	"github.com/klauern/mcpsync/internal/ui/tui"
)

func tuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse servers and backups interactively",
		Action: func(_ context.Context, _ *cli.Command) error {
			state, err := loadState()
			if err != nil {
				return err
			}

			for {
				final, err := tui.Run(tui.NewDashboardModel())
				if err != nil {
					return err
				}
				dashboard := final.(tui.DashboardModel)

				switch dashboard.Result().View {
				case tui.DashboardViewServers:
					if err := runServerBrowser(state); err != nil {
						return err
					}
				case tui.DashboardViewBackups:
					if err := runBackupBrowser(state); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		},
	}
}

// runServerBrowser shows every server from every detected client.
func runServerBrowser(state *appState) error {
	var rows []tui.ServerRow
	for _, c := range state.registry.Available() {
		servers, err := c.Load()
		if err != nil {
			fmt.Println(ui.StatusError(fmt.Sprintf("%s: %v", c.Client(), err)))
			continue
		}
		for _, name := range servers.Names() {
			rows = append(rows, tui.ServerRow{Client: c.Client(), Server: servers[name]})
		}
	}

	final, err := tui.Run(tui.NewServerListModel(rows))
	if err != nil {
		return err
	}
	list := final.(tui.ServerListModel)
	if sel := list.Result().Selected; sel != nil {
		fmt.Printf("%s %s\n", ui.Header(string(sel.Client)), formatServer(sel.Server))
	}
	return nil
}

// runBackupBrowser lists backups and executes the chosen action.
func runBackupBrowser(state *appState) error {
	backups, err := state.backups.List("")
	if err != nil {
		return err
	}

	final, err := tui.Run(tui.NewBackupListModel(backups))
	if err != nil {
		return err
	}
	list := final.(tui.BackupListModel)
	result := list.Result()

	switch result.Action {
	case tui.ActionRestore:
		if err := state.backups.Restore(result.Backup.ID, ""); err != nil {
			return err
		}
		fmt.Println(ui.StatusSuccess("restored " + result.Backup.ID))
	case tui.ActionDelete:
		if err := state.backups.Delete(result.Backup.ID); err != nil {
			return err
		}
		fmt.Println(ui.StatusSuccess("deleted " + result.Backup.ID))
	case tui.ActionVerify:
		if err := state.backups.Verify(result.Backup.ID); err != nil {
			return err
		}
		fmt.Println(ui.StatusSuccess(result.Backup.ID + " verified"))
	}
	return nil
}
