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

// CreatePlace stores a new place. Users create places for themselves only;
// admins may create them for anyone. The owner and every amenity must exist.
// The place and its amenity links are stored atomically when the backend
// supports transactions.
func (s *service) CreatePlace(ctx context.Context, actor domain.Actor, in PlaceInput) (*domain.Place, error) {
	if actor.Anonymous() || (!actor.Is(in.OwnerID) && !admin(actor)) {
		return nil, deny(ctx, serrors.ErrUnauthorized, actor, "create_place", "places can only be created for yourself")
	}

	var place *domain.Place
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		owner, err := tx.Users().Get(ctx, in.OwnerID)
		if err != nil {
			return fmt.Errorf("could not get owner: %w", err)
		}
		if owner == nil {
			return notFound("user", in.OwnerID)
		}

		amenities, err := resolveAmenities(ctx, tx.Amenities(), in.AmenityIDs)
		if err != nil {
			return err
		}

		place, err = domain.NewPlace(domain.PlaceParams{
			Title:       in.Title,
			Description: in.Description,
			Price:       in.Price,
			Latitude:    in.Latitude,
			Longitude:   in.Longitude,
			Location:    in.Location,
			Owner:       owner,
			Amenities:   amenities,
		})
		if err != nil {
			return err //nolint: wrapcheck
		}

		if err := tx.Places().Add(ctx, place); err != nil {
			return fmt.Errorf("could not store place: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	logger.Debug(ctx, "place created", zap.Stringer("place_id", place.ID), zap.Stringer("owner_id", place.Owner.ID))

	return place, nil
}

func (s *service) GetPlace(ctx context.Context, id domain.ID) (*domain.Place, error) {
	p, err := s.storage.Places().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get place: %w", err)
	}

	return p, nil
}

func (s *service) GetAllPlaces(ctx context.Context) ([]*domain.Place, error) {
	places, err := s.storage.Places().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list places: %w", err)
	}

	return places, nil
}

// UpdatePlace patches a place on behalf of its owner or an admin. Besides the
// place attributes, patch may carry "owner_id" (admins only) and "amenities"
// as lists of ids; both are resolved against the storage. It returns nil when
// the place does not exist.
func (s *service) UpdatePlace(ctx context.Context,
	actor domain.Actor,
	id domain.ID,
	patch domain.Patch) (*domain.Place, error) {
	var place *domain.Place
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.Places().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get place: %w", err)
		}
		if existing == nil {
			return nil
		}

		if !existing.OwnedBy(actor.UserID) && !admin(actor) {
			return deny(ctx, serrors.ErrForbidden, actor, "update_place", "only the owner can update a place")
		}

		resolved, err := s.resolvePlacePatch(ctx, tx, actor, patch)
		if err != nil {
			return err
		}

		if err := tx.Places().Update(ctx, id, resolved); err != nil {
			return err //nolint: wrapcheck
		}

		place, err = tx.Places().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not reload place: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	if place != nil {
		logger.Debug(ctx, "place updated", zap.Stringer("place_id", place.ID))
	}

	return place, nil
}

// resolvePlacePatch replaces the id references of patch with entities.
func (s *service) resolvePlacePatch(ctx context.Context,
	tx storage.AllStorage,
	actor domain.Actor,
	patch domain.Patch) (domain.Patch, error) {
	out := make(domain.Patch, len(patch))
	for k, v := range patch {
		out[k] = v
	}
	delete(out, "owner")

	if v, ok := out["owner_id"]; ok {
		delete(out, "owner_id")
		if !admin(actor) {
			return nil, deny(ctx, serrors.ErrForbidden, actor, "update_place", "only admins can reassign a place")
		}

		ownerID, err := parseID("owner_id", v)
		if err != nil {
			return nil, err
		}
		owner, err := tx.Users().Get(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("could not get owner: %w", err)
		}
		if owner == nil {
			return nil, notFound("user", ownerID)
		}
		out["owner"] = owner
	}

	if v, ok := out["amenities"]; ok {
		ids, err := parseIDs("amenities", v)
		if err != nil {
			return nil, err
		}
		amenities, err := resolveAmenities(ctx, tx.Amenities(), ids)
		if err != nil {
			return nil, err
		}
		out["amenities"] = amenities
	}

	return out, nil
}

// DeletePlace removes a place and its reviews on behalf of its owner or an admin.
func (s *service) DeletePlace(ctx context.Context, actor domain.Actor, id domain.ID) (*domain.Place, error) {
	var place *domain.Place
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		place, err = tx.Places().Get(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get place: %w", err)
		}
		if place == nil {
			return nil
		}

		if !place.OwnedBy(actor.UserID) && !admin(actor) {
			return deny(ctx, serrors.ErrForbidden, actor, "delete_place", "only the owner can delete a place")
		}

		for _, r := range append([]*domain.Review(nil), place.Reviews...) {
			if err := removeReview(ctx, tx, r); err != nil {
				return err
			}
		}

		if err := tx.Places().Delete(ctx, id); err != nil {
			return fmt.Errorf("could not delete place: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err //nolint: wrapcheck
	}

	if place != nil {
		logger.Debug(ctx, "place deleted", zap.Stringer("place_id", id))
	}

	return place, nil
}
