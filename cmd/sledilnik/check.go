package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/sledilnik/internal/store"
)

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report database connectivity and collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			ds, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ds.Close(context.Background())

			st := store.Diagnose(cmd.Context(), ds, cfg.DatabaseURLSet, cfg.DatabaseNameSet)
			if err := writeYAML(cmd, st); err != nil {
				return err
			}
			if st.ConnectionStatus != "connected" {
				return fmt.Errorf("database not connected")
			}
			return nil
		},
	}
}

func newActivityCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "activity <item-id>",
		Short: "Print the activity trail of an item",
		Long: `Prints every activity entry recorded for an item, oldest first.
Works for deleted items too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			closeLog, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			ds, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ds.Close(context.Background())

			activity, err := store.GetActivity(cmd.Context(), ds, args[0])
			if err != nil {
				return err
			}
			if len(activity) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No activity for %s\n", args[0])
				return nil
			}
			return writeYAML(cmd, activity)
		},
	}
}

func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}
