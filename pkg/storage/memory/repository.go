// Package memory implements the storage interfaces with process-lifetime maps.
// Entities are held by pointer, so Get returns the very object that was added
// and mutations made through Update are visible to every holder.
package memory

import (
	"context"
	"sync"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"
)

// Repository is a map-backed storage.Repository guarded by an RWMutex.
type Repository[T domain.Entity] struct {
	mu    sync.RWMutex
	store map[domain.ID]T
	order []domain.ID
}

var _ storage.Repository[*domain.User] = (*Repository[*domain.User])(nil)

// NewRepository returns an empty repository.
func NewRepository[T domain.Entity]() *Repository[T] {
	return &Repository[T]{store: make(map[domain.ID]T)}
}

// Add stores entity, replacing any entity with the same ID.
func (r *Repository[T]) Add(_ context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, ok := r.store[id]; !ok {
		r.order = append(r.order, id)
	}
	r.store[id] = entity

	return nil
}

// Get returns the entity with the given ID, or nil when absent.
func (r *Repository[T]) Get(_ context.Context, id domain.ID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store[id], nil
}

// GetAll returns every entity in insertion order.
func (r *Repository[T]) GetAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.store[id])
	}

	return out, nil
}

// Update applies patch through the entity's Update. It is a no-op when the ID
// is absent.
func (r *Repository[T]) Update(_ context.Context, id domain.ID, patch domain.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.store[id]
	if !ok {
		return nil
	}

	return entity.Update(patch) //nolint: wrapcheck
}

// Delete removes the entity. It is a no-op when the ID is absent.
func (r *Repository[T]) Delete(_ context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return nil
	}
	delete(r.store, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

// GetByAttribute scans entities in insertion order and returns the first
// whose attribute equals value.
func (r *Repository[T]) GetByAttribute(_ context.Context, name string, value any) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var zero T
	for _, id := range r.order {
		entity := r.store[id]
		got, ok := entity.Attribute(name)
		if !ok {
			return zero, nil
		}
		if sameValue(got, value) {
			return entity, nil
		}
	}

	return zero, nil
}

// filter returns the entities matching keep in insertion order.
func (r *Repository[T]) filter(keep func(T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []T
	for _, id := range r.order {
		if entity := r.store[id]; keep(entity) {
			out = append(out, entity)
		}
	}

	return out
}

// Len returns the number of stored entities.
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store)
}
