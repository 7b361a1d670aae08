package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/erazemk/sledilnik/internal/config"
	"github.com/erazemk/sledilnik/internal/docstore"
	"github.com/erazemk/sledilnik/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath   string
	databaseURL  string
	databaseName string
	logLevel     string
	logFile      string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "sledilnik",
		Short: "Item tracker with an activity audit trail",
		Long: `Sledilnik serves a JSON API for tracking items and records every change
in an append-only activity log.

Storage is SQLite by default; pass a mongodb:// URL to use MongoDB.

Quick start:
  sledilnik serve
  curl -X POST localhost:8000/api/items -d '{"title": "Buy milk"}'`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pf.StringVarP(&flags.databaseURL, "db", "d", "", "SQLite path or MongoDB URL (default: "+config.DefaultDatabaseURL+")")
	pf.StringVar(&flags.databaseName, "db-name", "", "MongoDB database name (default: "+docstore.DefaultMongoDatabase+")")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: info)")
	pf.StringVarP(&flags.logFile, "log", "l", "", "log file path (default: no file, stdout/stderr only)")

	root.AddCommand(newServeCmd(flags), newCheckCmd(flags), newActivityCmd(flags))
	return root
}

// loadConfig resolves the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath, os.Getenv)
	if err != nil {
		return nil, err
	}

	pf := cmd.Flags()
	if pf.Changed("db") {
		cfg.DatabaseURL = flags.databaseURL
		cfg.DatabaseURLSet = true
	}
	if pf.Changed("db-name") {
		cfg.DatabaseName = flags.databaseName
		cfg.DatabaseNameSet = true
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if pf.Changed("log") {
		cfg.LogFile = flags.logFile
	}
	return cfg, nil
}

// openStore connects to the configured document store.
func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	ds, err := docstore.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	log.Info().Str("store", ds.Backend()).Msg("database ready")
	return ds, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the global logger for a command run.
func setupLogging(cfg *config.Config) (func(), error) {
	return logging.Setup(cfg.LogLevel, cfg.LogFile)
}
