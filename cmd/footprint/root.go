package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/untoldecay/footprint/internal/config"
	"github.com/untoldecay/footprint/internal/logging"
	"github.com/untoldecay/footprint/internal/store"
)

// cfg, db, and log are populated by rootCmd's PersistentPreRunE and shared
// by every subcommand in this package.
var (
	cfg *config.Config
	db  *store.Store
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "footprint",
	Short:         "Digital footprint protection engine",
	Long:          "Monitor a protected person's exposure across data brokers, breach databases, paste sites, and social profiles, and drive opt-out removal requests to completion.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// schedule run/status and report subcommands print without touching
		// the store in some invocations, but opening it eagerly keeps every
		// subcommand's setup identical and cheap against a local SQLite file.
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		logger, err := logging.New(logging.Options{Dir: filepath.Dir(cfg.DBPath), Console: true})
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		log = logger

		st, err := store.Open(cmd.Context(), cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		db = st
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			return db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.SetContext(context.Background())
}
