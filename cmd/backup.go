package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookkeeper/transfer"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the database file to a timestamped backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := transfer.Backup(cfg.DBPath, cfg.BackupDir)
		if err != nil {
			return err
		}
		fmt.Printf("Backup written to %s\n", path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Replace the database file with a backup",
	Long: `Replace the database file with a backup. The current database is first
copied aside to a timestamped .before_restore file, so a mistaken restore
can be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := transfer.Restore(args[0], cfg.DBPath); err != nil {
			return err
		}
		fmt.Printf("Restored %s from %s\n", cfg.DBPath, args[0])
		return nil
	},
}
