package memory_test

import (
	"context"
	"hbnb/pkg/domain"
	"hbnb/pkg/storage"
	"hbnb/pkg/storage/memory"
	"hbnb/pkg/storage/storagetest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemory_Conformance(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		t.Helper()

		return memory.New()
	})
}

func TestRepository_GetReturnsSameObject(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*domain.Amenity]()

	a, err := domain.NewAmenity("WiFi")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, a))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Same(t, a, got)

	require.NoError(t, repo.Update(ctx, a.ID, domain.Patch{"name": "Fast WiFi"}))
	require.Equal(t, "Fast WiFi", a.Name)
}

func TestRepository_AddTwiceKeepsOneEntry(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*domain.Amenity]()

	a, err := domain.NewAmenity("WiFi")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, a))
	require.NoError(t, repo.Add(ctx, a))
	require.Equal(t, 1, repo.Len())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestRepository_GetByAttributeNumbers(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	owner, err := domain.NewUser(domain.UserParams{FirstName: "A", LastName: "B", Email: "a@b.com"})
	require.NoError(t, err)
	place, err := domain.NewPlace(domain.PlaceParams{Title: "Loft", Price: 100, Owner: owner})
	require.NoError(t, err)
	require.NoError(t, s.Places().Add(ctx, place))

	got, err := s.Places().GetByAttribute(ctx, "price", 100)
	require.NoError(t, err)
	require.Same(t, place, got)

	got, err = s.Places().GetByAttribute(ctx, "owner_id", owner.ID.String())
	require.NoError(t, err)
	require.Same(t, place, got)

	for _, price := range []any{int8(100), int16(100), uint(100), uint8(100), uint16(100), uint32(100), uint64(100), float32(100)} {
		got, err = s.Places().GetByAttribute(ctx, "price", price)
		require.NoError(t, err)
		require.Same(t, place, got, "price as %T", price)
	}

	got, err = s.Places().GetByAttribute(ctx, "owner_id", uuid.UUID(owner.ID))
	require.NoError(t, err)
	require.Same(t, place, got)

	got, err = s.Places().GetByAttribute(ctx, "owner_id", "garbage")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository[*domain.Amenity]()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			a, err := domain.NewAmenity("WiFi")
			if err != nil {
				return
			}
			_ = repo.Add(ctx, a)
			_, _ = repo.Get(ctx, a.ID)
			_, _ = repo.GetByAttribute(ctx, "name", "WiFi")
			_ = repo.Update(ctx, a.ID, domain.Patch{"name": "Pool"})
		}()
	}
	wg.Wait()

	require.Equal(t, 20, repo.Len())
}

func TestMemory_WithTxKeepsChangesOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	err := s.WithTx(ctx, func(tx storage.AllStorage) error {
		a, err := domain.NewAmenity("WiFi")
		require.NoError(t, err)
		require.NoError(t, tx.Amenities().Add(ctx, a))

		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	all, err := s.Amenities().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
