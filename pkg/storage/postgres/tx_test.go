package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"
	"hbnb/pkg/storage/postgres"
	"hbnb/pkg/storage/postgres/postgrestest"

	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()

	u, err := domain.NewUser(domain.UserParams{FirstName: "A", LastName: "B", Email: email})
	require.NoError(t, err)

	return u
}

func requireUserStored(t *testing.T, pg *postgres.PgSQL, id domain.ID, stored bool) {
	t.Helper()

	got, err := pg.Users().Get(context.Background(), id)
	require.NoError(t, err)
	if stored {
		require.NotNil(t, got)
	} else {
		require.Nil(t, got)
	}
}

func TestPgSQL_Transactions(t *testing.T) {
	pg := postgrestest.Start(t)
	ctx := context.Background()

	t.Run("begin binds a transaction once", func(t *testing.T) {
		txStorage, err := pg.Begin(ctx)
		require.NoError(t, err)

		inner, ok := txStorage.(*postgres.PgSQL)
		require.True(t, ok)
		_, isTx := inner.DB.(*sql.Tx)
		require.True(t, isTx)

		_, err = inner.Begin(ctx)
		require.ErrorIs(t, err, storage.ErrAlreadyInTx)

		require.NoError(t, inner.Rollback())
	})

	t.Run("commit and rollback need a transaction", func(t *testing.T) {
		require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
		require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)
	})

	t.Run("commit persists a user", func(t *testing.T) {
		postgrestest.Truncate(t, pg)
		u := newUser(t, "commit@hbnb.io")

		tx, err := pg.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Users().Add(ctx, u))
		requireUserStored(t, pg, u.ID, false)

		require.NoError(t, tx.Commit())
		requireUserStored(t, pg, u.ID, true)
	})

	t.Run("rollback discards a user", func(t *testing.T) {
		postgrestest.Truncate(t, pg)
		u := newUser(t, "rollback@hbnb.io")

		tx, err := pg.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Users().Add(ctx, u))
		require.NoError(t, tx.Rollback())

		requireUserStored(t, pg, u.ID, false)
	})

	t.Run("with tx commits on success and rolls back on error", func(t *testing.T) {
		postgrestest.Truncate(t, pg)
		kept := newUser(t, "kept@hbnb.io")
		dropped := newUser(t, "dropped@hbnb.io")

		require.NoError(t, pg.WithTx(ctx, func(tx storage.AllStorage) error {
			return tx.Users().Add(ctx, kept)
		}))

		boom := errors.New("boom")
		err := pg.WithTx(ctx, func(tx storage.AllStorage) error {
			require.NoError(t, tx.Users().Add(ctx, dropped))

			return boom
		})
		require.ErrorIs(t, err, boom)

		requireUserStored(t, pg, kept.ID, true)
		requireUserStored(t, pg, dropped.ID, false)
	})

	t.Run("place writes join the outer transaction", func(t *testing.T) {
		postgrestest.Truncate(t, pg)
		owner := newUser(t, "owner@hbnb.io")
		wifi, err := domain.NewAmenity("WiFi")
		require.NoError(t, err)

		tx, err := pg.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Users().Add(ctx, owner))
		require.NoError(t, tx.Amenities().Add(ctx, wifi))

		place, err := domain.NewPlace(domain.PlaceParams{
			Title: "Loft", Price: 80, Owner: owner, Amenities: []*domain.Amenity{wifi},
		})
		require.NoError(t, err)
		require.NoError(t, tx.Places().Add(ctx, place))
		require.NoError(t, tx.Places().Update(ctx, place.ID, domain.Patch{"amenities": []*domain.Amenity{}}))

		got, err := pg.Places().Get(ctx, place.ID)
		require.NoError(t, err)
		require.Nil(t, got, "uncommitted place is visible outside the transaction")

		require.NoError(t, tx.Rollback())

		got, err = pg.Places().Get(ctx, place.ID)
		require.NoError(t, err)
		require.Nil(t, got)
		requireUserStored(t, pg, owner.ID, false)
	})
}
