package commands

import (
	"fmt"

	"wikiflow/internal/repository/postgres"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create any missing wiki tables and indexes",
	Long: `Create the wiki tables, constraints and indexes for the configured
TABLE_PREFIX. Existing objects are left untouched, so the command can be
run repeatedly.`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	env, err := openEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.requirePostgres("schema"); err != nil {
		return err
	}

	if err := postgres.EnsureSchema(ctx, env.backend.Pool, env.backend.Tables); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "schema ready (prefix %q)\n", env.cfg.TablePrefix)
	return nil
}
