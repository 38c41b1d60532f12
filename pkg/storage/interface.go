// Package storage defines the storage-agnostic interfaces the facade relies
// on. A Repository offers CRUD plus attribute lookup for one entity type, and
// a Storage groups one repository per entity type. The memory and postgres
// packages provide conforming implementations that callers cannot tell apart
// except for durability across restarts.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"

	"hbnb/pkg/domain"
)

// Repository stores entities of a single type.
type Repository[T domain.Entity] interface {
	// Add stores a new entity.
	Add(ctx context.Context, entity T) error
	// Get returns the entity with the given ID, or the zero T (nil) when absent.
	Get(ctx context.Context, id domain.ID) (T, error)
	// GetAll returns every stored entity in insertion order.
	GetAll(ctx context.Context) ([]T, error)
	// Update applies patch through the entity's own Update, so validation
	// always runs. It is a no-op when the ID is absent.
	Update(ctx context.Context, id domain.ID, patch domain.Patch) error
	// Delete removes the entity. It is a no-op when the ID is absent.
	Delete(ctx context.Context, id domain.ID) error
	// GetByAttribute returns the first entity whose attribute equals value,
	// or nil when none matches or the attribute is unknown.
	GetByAttribute(ctx context.Context, name string, value any) (T, error)
}

// UserRepository stores users.
type UserRepository interface {
	Repository[*domain.User]
}

// PlaceRepository stores places together with their amenity links.
type PlaceRepository interface {
	Repository[*domain.Place]
}

// AmenityRepository stores amenities.
type AmenityRepository interface {
	Repository[*domain.Amenity]
}

// ReviewRepository stores reviews.
type ReviewRepository interface {
	Repository[*domain.Review]
}

// AllStorage groups the repositories of every entity type.
type AllStorage interface {
	Users() UserRepository
	Places() PlaceRepository
	Amenities() AmenityRepository
	Reviews() ReviewRepository
}

// Storage is a non-transactional handle able to run a group of repository
// calls in a transaction where the backend supports it.
type Storage interface {
	AllStorage

	// Close releases any resources held by the implementation. After Close,
	// the instance should not be used.
	Close() error

	// WithTx invokes cb with a storage bound to a transaction, committing when
	// cb returns nil and rolling back otherwise. Backends without transactions
	// run cb directly.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}

// TxStorage is a storage handle bound to an open transaction.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}
