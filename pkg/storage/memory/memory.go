package memory

import (
	"context"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"
)

// The typed repositories carry the cascades a relational store gets from its
// foreign keys, so that a delete leaves the same aggregates behind.
type (
	userRepository struct {
		*Repository[*domain.User]
		m *Memory
	}
	placeRepository struct {
		*Repository[*domain.Place]
		m *Memory
	}
	amenityRepository struct {
		*Repository[*domain.Amenity]
		m *Memory
	}
	reviewRepository struct {
		*Repository[*domain.Review]
		m *Memory
	}
)

// Memory implements storage.Storage for the lifetime of the process.
type Memory struct {
	users     *Repository[*domain.User]
	places    *Repository[*domain.Place]
	amenities *Repository[*domain.Amenity]
	reviews   *Repository[*domain.Review]
}

var _ storage.Storage = (*Memory)(nil)

// New returns an empty in-memory storage.
func New() *Memory {
	return &Memory{
		users:     NewRepository[*domain.User](),
		places:    NewRepository[*domain.Place](),
		amenities: NewRepository[*domain.Amenity](),
		reviews:   NewRepository[*domain.Review](),
	}
}

// Users implements storage.AllStorage.
func (m *Memory) Users() storage.UserRepository { return userRepository{m.users, m} }

// Places implements storage.AllStorage.
func (m *Memory) Places() storage.PlaceRepository { return placeRepository{m.places, m} }

// Amenities implements storage.AllStorage.
func (m *Memory) Amenities() storage.AmenityRepository { return amenityRepository{m.amenities, m} }

// Reviews implements storage.AllStorage.
func (m *Memory) Reviews() storage.ReviewRepository { return reviewRepository{m.reviews, m} }

// Close is a no-op; the maps are simply dropped with the Memory value.
func (m *Memory) Close() error { return nil }

// WithTx runs cb directly against m. The transient store has no rollback:
// changes made before cb fails are kept.
func (m *Memory) WithTx(_ context.Context, cb func(storage storage.AllStorage) error) error {
	return cb(m)
}

// Delete removes the user together with the places it owns and the reviews
// it wrote.
func (r userRepository) Delete(ctx context.Context, id domain.ID) error {
	for _, review := range r.m.reviews.filter(func(review *domain.Review) bool {
		return review.User != nil && review.User.ID == id
	}) {
		if err := r.m.Reviews().Delete(ctx, review.ID); err != nil {
			return err
		}
	}
	for _, place := range r.m.places.filter(func(place *domain.Place) bool { return place.OwnedBy(id) }) {
		if err := r.m.Places().Delete(ctx, place.ID); err != nil {
			return err
		}
	}

	return r.Repository.Delete(ctx, id)
}

// Delete removes the place and its reviews.
func (r placeRepository) Delete(ctx context.Context, id domain.ID) error {
	for _, review := range r.m.reviews.filter(func(review *domain.Review) bool {
		return review.Place != nil && review.Place.ID == id
	}) {
		if err := r.m.reviews.Delete(ctx, review.ID); err != nil {
			return err
		}
	}

	return r.Repository.Delete(ctx, id)
}

// Delete removes the amenity and strips it from every place offering it.
func (r amenityRepository) Delete(ctx context.Context, id domain.ID) error {
	for _, place := range r.m.places.filter(func(place *domain.Place) bool { return place.HasAmenity(id) }) {
		place.RemoveAmenity(id)
	}

	return r.Repository.Delete(ctx, id)
}

// Delete removes the review and detaches it from its place.
func (r reviewRepository) Delete(ctx context.Context, id domain.ID) error {
	review, err := r.Get(ctx, id)
	if err != nil || review == nil {
		return err
	}
	if review.Place != nil {
		review.Place.DetachReview(id)
	}

	return r.Repository.Delete(ctx, id)
}
