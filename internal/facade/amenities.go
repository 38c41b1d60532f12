package facade

import (
	"context"
	"fmt"

	"hbnb/pkg/domain"
	"hbnb/pkg/logger"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage"

	"go.uber.org/zap"
)

// CreateAmenity stores a new amenity. Only admins manage amenities and names
// are unique.
func (s *service) CreateAmenity(ctx context.Context, actor domain.Actor, in AmenityInput) (*domain.Amenity, error) {
	if !admin(actor) {
		return nil, deny(ctx, serrors.ErrForbidden, actor, "create_amenity", "only admins can create amenities")
	}

	var amenity *domain.Amenity
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := checkAmenityName(ctx, tx, in.Name, domain.ID{}); err != nil {
			return err
		}

		var err error
		amenity, err = domain.NewAmenity(in.Name)
		if err != nil {
			return err //nolint: wrapcheck
		}

		if err := tx.Amenities().Add(ctx, amenity); err != nil {
			return fmt.Errorf("could not store amenity: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	logger.Debug(ctx, "amenity created", zap.Stringer("amenity_id", amenity.ID), zap.String("name", amenity.Name))

	return amenity, nil
}

func (s *service) GetAmenity(ctx context.Context, id domain.ID) (*domain.Amenity, error) {
	a, err := s.storage.Amenities().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get amenity: %w", err)
	}

	return a, nil
}

func (s *service) GetAllAmenities(ctx context.Context) ([]*domain.Amenity, error) {
	amenities, err := s.storage.Amenities().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list amenities: %w", err)
	}

	return amenities, nil
}

// UpdateAmenity renames an amenity. It returns nil when the amenity does not exist.
func (s *service) UpdateAmenity(ctx context.Context,
	actor domain.Actor,
	id domain.ID,
	patch domain.Patch) (*domain.Amenity, error) {
	if !admin(actor) {
		return nil, deny(ctx, serrors.ErrForbidden, actor, "update_amenity", "only admins can update amenities")
	}

	var amenity *domain.Amenity
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.Amenities().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get amenity: %w", err)
		}
		if existing == nil {
			return nil
		}

		if name, ok := patch["name"].(string); ok && name != existing.Name {
			if err := checkAmenityName(ctx, tx, name, id); err != nil {
				return err
			}
		}

		if err := tx.Amenities().Update(ctx, id, patch); err != nil {
			return err //nolint: wrapcheck
		}

		amenity, err = tx.Amenities().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not reload amenity: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return amenity, nil
}

// checkAmenityName fails with a conflict when another amenity than self
// already carries name.
func checkAmenityName(ctx context.Context, tx storage.AllStorage, name string, self domain.ID) error {
	other, err := tx.Amenities().GetByAttribute(ctx, "name", name)
	if err != nil {
		return fmt.Errorf("could not look up amenity name: %w", err)
	}
	if other != nil && other.ID != self {
		return serrors.With(serrors.ErrConflict, "amenity %s already exists", name)
	}

	return nil
}
