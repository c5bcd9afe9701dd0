package commands

import (
	"fmt"

	"wikiflow/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var confirmDrop bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every wiki table for the configured prefix",
	Long: `Drop all wiki tables for the configured TABLE_PREFIX, including the
audit trail. Refused when ENVIRONMENT=prod.

Requires --yes.`,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVar(&confirmDrop, "yes", false, "Confirm that all wiki data should be destroyed")
	rootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !confirmDrop {
		return fmt.Errorf("drop destroys all data; rerun with --yes")
	}

	ctx := cmd.Context()
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if env.cfg.Environment == "prod" {
		return fmt.Errorf("refusing to drop tables in the prod environment")
	}
	if err := env.requirePostgres("drop"); err != nil {
		return err
	}

	dropped, err := postgres.DropSchema(ctx, env.backend.Pool, env.backend.Tables)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, table := range dropped {
		fmt.Fprintf(out, "dropped %s\n", table)
	}
	return nil
}
