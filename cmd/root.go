package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bookkeeper/catalog"
	"bookkeeper/config"
)

var (
	cfg    *config.Config
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "bookkeeper",
	Short: "Personal library catalog manager",
	Long: `bookkeeper tracks owned books, categorizes them, records who has
borrowed which book and when it is due back, and summarizes the collection.

The catalog lives in a single SQLite file (default data/bookkeeper.db,
override with --db or BOOKKEEPER_DB_PATH).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environments set variables directly.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		if dbPath != "" {
			cfg.DBPath = dbPath
		}

		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(level)
		return nil
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the catalog database (overrides config)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(lendCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(borrowedCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(overdueCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

// openStore opens the catalog for commands that need it. Callers must Close.
func openStore() (*catalog.Store, error) {
	var opts []catalog.Option
	if cfg.StrictLending {
		opts = append(opts, catalog.WithStrictLending())
	}
	return catalog.Open(cfg.DBPath, opts...)
}
