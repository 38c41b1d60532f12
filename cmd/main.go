// Package main provides the CLI entrypoint for the HBnB core.
// It wires subcommands (migrate, user, amenity, place, review), loads
// configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"hbnb/internal/config"
	"hbnb/pkg/logger"
	"hbnb/pkg/storage"
	"hbnb/pkg/storage/memory"
	"hbnb/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getStorage returns the storage selected by the configured driver.
func getStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func()) {
	if cfg.Storage.Driver == config.PostgresDriver {
		return getPostgres(ctx, cfg)
	}

	logger.Debug(ctx, "using in-memory storage, data will not survive this process")

	return memory.New(), func() {}
}

// newRootCommand builds the root Cobra command with every subcommand bound to cfg.
func newRootCommand(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hbnb",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")
	rootCmd.PersistentFlags().Bool("metrics", false, "Print collected metrics after the command")

	rootCmd.AddCommand(
		migrateCommand(cfg),
		userCommand(cfg),
		amenityCommand(cfg),
		placeCommand(cfg),
		reviewCommand(cfg),
	)

	return rootCmd
}

// main loads configuration and logging, then executes the CLI.
func main() {
	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// metrics is only declared so that the standard parser accepts it; its
	// value is read from cobra once the command runs.
	configPath := flag.String("c", "config.yml", "The config file path")
	_ = flag.Bool("metrics", false, "Print collected metrics after the command")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment, cfg.Log.Level)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	err = newRootCommand(cfg).ExecuteContext(ctx)
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
