package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"wikiflow/internal/config"
	"wikiflow/internal/repository"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wikictl",
	Short: "wikictl - wiki storage administration",
	Long: `wikictl manages the storage behind the wiki server.

It reads the same environment as the server (DATABASE_URL, TABLE_PREFIX,
STORAGE_BACKEND, ...) and loads a .env file from the working directory
when one exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Errors are returned for main to print.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersion sets the version reported by --version
func SetVersion(v string) {
	rootCmd.Version = v
}

// environment is what every subcommand needs: config, a logger and storage
type environment struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend *repository.Backend
}

// openEnvironment loads configuration and opens the configured backend
func openEnvironment(ctx context.Context) (*environment, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadTooling()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, logger: logger, backend: backend}, nil
}

func (e *environment) close() {
	e.backend.Close()
}

// requirePostgres rejects commands that only make sense against a database
func (e *environment) requirePostgres(command string) error {
	if e.backend.Pool == nil {
		return fmt.Errorf("%s needs STORAGE_BACKEND=%s", command, config.StoragePostgres)
	}
	return nil
}
