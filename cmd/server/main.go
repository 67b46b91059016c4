// Package main is the flashlearn API server. It serves the flashcard,
// study session and analytics API and runs database migrations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/phrazzld/flashlearn/internal/config"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/phrazzld/flashlearn/internal/platform/postgres"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command serves the API.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "flashlearn",
		Short:        "Flashcard API with adaptive spaced repetition",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.PersistentFlags().String("config", "", "path to a config file (overrides "+config.ConfigFileEnv+")")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:       "migrate [" + strings.Join(postgres.MigrationCommands, "|") + "]",
		Short:     "Run database migrations",
		Args:      migrateArgs,
		ValidArgs: postgres.MigrationCommands,
		RunE:      runMigrate,
	})
	root.AddCommand(newHashPasswordCmd())
	return root
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if !slices.Contains(postgres.MigrationCommands, args[0]) {
		return fmt.Errorf("%w: %q", postgres.ErrUnknownMigrationCommand, args[0])
	}
	return nil
}

// loadConfigAndLogger loads configuration, honouring the --config flag, and
// installs the JSON logger as the slog default.
func loadConfigAndLogger(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.ConfigFileEnv)
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("llm_provider", cfg.LLM.Provider))
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfigAndLogger(cmd)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(cmd.Context(), cfg, log)
	if err != nil {
		log.Error("database setup failed", slog.String("error", err.Error()))
		return err
	}

	app, err := newApplication(cmd.Context(), cfg, log, db)
	if err != nil {
		_ = db.Close()
		log.Error("application setup failed", slog.String("error", err.Error()))
		return err
	}
	return app.Run(cmd.Context())
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfigAndLogger(cmd)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := postgres.Migrate(cmd.Context(), db, args[0], log); err != nil {
		log.Error("migration failed", slog.String("command", args[0]), slog.String("error", err.Error()))
		return err
	}
	return nil
}
