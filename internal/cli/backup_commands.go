package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/mcpsync/internal/backup"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/ui"
)

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Manage config file backups",
		Commands: []*cli.Command{
			backupCreateCommand(),
			backupListCommand(),
			restoreCommand(),
			backupDeleteCommand(),
			backupVerifyCommand(),
		},
	}
}

func backupCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Snapshot a client's config file",
		UsageText: "mcpsync backup create <client> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Note stored with the backup",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected <client>, got %d arguments", cmd.Args().Len())
			}
			client, err := model.ParseClient(cmd.Args().Get(0))
			if err != nil {
				return err
			}

			state, err := loadState()
			if err != nil {
				return err
			}
			c, err := state.registry.Resolve(client)
			if err != nil {
				return err
			}

			meta, err := state.backups.Snapshot(client, c.Path(), cmd.String("description"))
			if err != nil {
				return err
			}
			if meta == nil {
				return fmt.Errorf("%s has no config file at %s", client.DisplayName(), c.Path())
			}
			fmt.Println(ui.StatusSuccess("created backup " + meta.ID))
			return nil
		},
	}
}

func backupListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List backups, newest first",
		UsageText: "mcpsync backup list [client]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			var client model.Client
			if cmd.Args().Len() > 0 {
				parsed, err := model.ParseClient(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				client = parsed
			}

			state, err := loadState()
			if err != nil {
				return err
			}
			backups, err := state.backups.List(client)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Println(ui.Dim("no backups"))
				return nil
			}

			fmt.Println(ui.Header(fmt.Sprintf("Backups (%d)", len(backups))))
			for _, b := range backups {
				fmt.Printf("  %s  %-15s %s  %s\n",
					ui.Bold(b.ID),
					b.Client,
					b.CreatedAt.Format("2006-01-02 15:04:05"),
					ui.Dim(b.Description),
				)
			}
			return nil
		},
	}
}

func restoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore a backup to its original location",
		UsageText: "mcpsync backup restore <backup-id> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Restore to this path instead of the original location",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected <backup-id>, got %d arguments", cmd.Args().Len())
			}
			id := cmd.Args().Get(0)

			state, err := loadState()
			if err != nil {
				return err
			}
			if err := state.backups.Restore(id, cmd.String("target")); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess("restored " + id))
			return nil
		},
	}
}

func backupDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a backup and its metadata",
		UsageText: "mcpsync backup delete <backup-id>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected <backup-id>, got %d arguments", cmd.Args().Len())
			}
			id := cmd.Args().Get(0)

			state, err := loadState()
			if err != nil {
				return err
			}
			if err := state.backups.Delete(id); err != nil {
				return err
			}
			fmt.Println(ui.StatusSuccess("deleted " + id))
			return nil
		},
	}
}

func backupVerifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check a backup file against its recorded hash",
		UsageText: "mcpsync backup verify <backup-id>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected <backup-id>, got %d arguments", cmd.Args().Len())
			}
			id := cmd.Args().Get(0)

			state, err := loadState()
			if err != nil {
				return err
			}
			if err := state.backups.Verify(id); err != nil {
				var corrupt *backup.CorruptError
				if errors.As(err, &corrupt) {
					return fmt.Errorf("backup %s is corrupt: contents do not match the recorded hash", id)
				}
				return err
			}
			fmt.Println(ui.StatusSuccess(id + " verified"))
			return nil
		},
	}
}
