// Package facade composes the repositories and exposes entity-level
// operations together with the cross-entity rules no single entity can check:
// uniqueness, existence of references, ownership and admin rights.
package facade

import (
	"context"
	"fmt"

	"hbnb/internal/config"
	"hbnb/pkg/domain"
	"hbnb/pkg/logger"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage"

	"go.uber.org/zap"
)

// Options configure the policy checks of the facade.
type Options struct {
	// AllowAdminBootstrap lets anyone create an admin account while no user
	// exists yet, so that a fresh installation can be set up.
	AllowAdminBootstrap bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AllowAdminBootstrap: cfg.Facade.AllowAdminBootstrap,
	}
}

// service is the concrete implementation of the Facade interface.
type service struct {
	options Options
	storage storage.Storage
}

// New creates a new Facade backed by the provided storage.
func New(storage storage.Storage, options Options) Facade {
	return &service{
		options: options,
		storage: storage,
	}
}

// deny logs a refused operation and returns the matching semantic error.
func deny(ctx context.Context, kind serrors.Kind, actor domain.Actor, op, msgFmt string, args ...any) error {
	err := serrors.With(kind, msgFmt, args...)
	logger.Info(ctx, "operation denied",
		zap.String("operation", op),
		zap.Stringer("actor", actor.UserID),
		zap.Bool("actor_is_admin", actor.IsAdmin),
		zap.String("reason", err.Error()))

	return err
}

func notFound(what string, id domain.ID) error {
	return serrors.With(serrors.ErrNotFound, "%s %s not found", what, id)
}

// parseIDs converts a patch value holding a list of ids.
func parseIDs(field string, v any) ([]domain.ID, error) {
	switch ids := v.(type) {
	case []domain.ID:
		return ids, nil
	case []string:
		out := make([]domain.ID, 0, len(ids))
		for _, s := range ids {
			id, err := domain.ParseID(s)
			if err != nil {
				return nil, &domain.ValidationError{Field: field, Reason: "must contain valid UUIDs"}
			}
			out = append(out, id)
		}

		return out, nil
	case []any:
		out := make([]domain.ID, 0, len(ids))
		for _, item := range ids {
			one, err := parseID(field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, one)
		}

		return out, nil
	}

	return nil, &domain.ValidationError{Field: field, Reason: "must be a list of ids"}
}

// parseID converts a patch value holding a single id.
func parseID(field string, v any) (domain.ID, error) {
	switch id := v.(type) {
	case domain.ID:
		return id, nil
	case string:
		parsed, err := domain.ParseID(id)
		if err != nil {
			return domain.ID{}, &domain.ValidationError{Field: field, Reason: "must be a valid UUID"}
		}

		return parsed, nil
	}

	return domain.ID{}, &domain.ValidationError{Field: field, Reason: "must be an id"}
}

func resolveAmenities(ctx context.Context, repo storage.AmenityRepository, ids []domain.ID) ([]*domain.Amenity, error) {
	out := make([]*domain.Amenity, 0, len(ids))
	for _, id := range ids {
		a, err := repo.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("could not get amenity: %w", err)
		}
		if a == nil {
			return nil, notFound("amenity", id)
		}
		out = append(out, a)
	}

	return out, nil
}
