package main

import (
	"context"

	"hbnb/internal/config"
	"hbnb/internal/facade"
	"hbnb/pkg/domain"
	"hbnb/pkg/logger"
	"hbnb/pkg/metrics"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage/instrumented"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// storageNote is appended to the help of every entity command group.
const storageNote = `Data lives in the storage selected by storage.driver. The memory driver
starts every invocation from an empty store, so --as can never authenticate
and commands that need an acting user (place create, review create, amenity
create) only succeed with the postgres driver.`

// app bundles what a subcommand needs to run one facade operation.
type app struct {
	facade   facade.Facade
	provider *metrics.Provider
}

// newApp builds the facade on top of the configured storage. Metrics are
// collected when enabled in the config or requested with --metrics; the
// latter also prints them to the command output once the returned cleanup
// runs.
func newApp(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*app, func()) {
	printMetrics, _ := cmd.Flags().GetBool("metrics")
	strg, closeStrg := getStorage(ctx, cfg)
	a := &app{}

	if cfg.Metrics.Enabled || printMetrics {
		provider, err := metrics.NewProvider()
		if err != nil {
			logger.Fatal(ctx, "could not create metrics provider", zap.Error(err))
		}
		wrapped, err := instrumented.New(strg, instrumented.Options{MeterProvider: provider.MeterProvider})
		if err != nil {
			logger.Fatal(ctx, "could not instrument storage", zap.Error(err))
		}
		strg = wrapped
		a.provider = provider
	}

	a.facade = facade.New(strg, facade.NewOptions(cfg))

	return a, func() {
		if a.provider != nil {
			if printMetrics {
				if err := a.provider.WriteText(cmd.OutOrStdout()); err != nil {
					logger.Warn(ctx, "could not print metrics", zap.Error(err))
				}
			}
			if err := a.provider.Shutdown(ctx); err != nil {
				logger.Warn(ctx, "could not shutdown metrics provider", zap.Error(err))
			}
		}
		closeStrg()
	}
}

// addActorFlags registers the credentials used to act as an existing user.
func addActorFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("as", "", "Email of the user performing the operation")
	cmd.PersistentFlags().String("password", "", "Password of the user performing the operation")
}

// actor authenticates the --as user, or returns the anonymous actor.
func (a *app) actor(ctx context.Context, cmd *cobra.Command) (domain.Actor, error) {
	email, _ := cmd.Flags().GetString("as")
	if email == "" {
		return domain.Actor{}, nil
	}
	password, _ := cmd.Flags().GetString("password")

	u, err := a.facade.Authenticate(ctx, email, password)
	if err != nil {
		return domain.Actor{}, err //nolint: wrapcheck
	}

	return domain.ActorOf(u), nil
}

// parseIDArg parses a positional id argument.
func parseIDArg(s string) (domain.ID, error) {
	return domain.ParseID(s) //nolint: wrapcheck
}

func notFound(entity, id string) error {
	return serrors.With(serrors.ErrNotFound, "%s %s not found", entity, id)
}
