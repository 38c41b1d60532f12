package facade_test

import (
	"context"
	"testing"

	"hbnb/internal/facade"
	"hbnb/pkg/domain"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage/postgres/postgrestest"

	"github.com/stretchr/testify/require"
)

func TestFacade_Postgres(t *testing.T) {
	pg := postgrestest.Start(t)
	ctx := context.Background()

	newPgWorld := func(t *testing.T) (facade.Facade, domain.Actor, *domain.User, *domain.User) {
		t.Helper()
		postgrestest.Truncate(t, pg)

		f := facade.New(pg, facade.Options{AllowAdminBootstrap: true})
		admin := domain.ActorOf(createUser(t, f, domain.Actor{}, "admin@hbnb.io", true))
		owner := createUser(t, f, domain.Actor{}, "owner@hbnb.io", false)
		guest := createUser(t, f, domain.Actor{}, "guest@hbnb.io", false)

		return f, admin, owner, guest
	}

	t.Run("place and review lifecycle", func(t *testing.T) {
		f, admin, owner, guest := newPgWorld(t)

		wifi, err := f.CreateAmenity(ctx, admin, facade.AmenityInput{Name: "WiFi"})
		require.NoError(t, err)
		pool, err := f.CreateAmenity(ctx, admin, facade.AmenityInput{Name: "Pool"})
		require.NoError(t, err)

		p, err := f.CreatePlace(ctx, domain.ActorOf(owner), facade.PlaceInput{
			Title: "Loft", Price: 80, OwnerID: owner.ID, AmenityIDs: []domain.ID{wifi.ID, pool.ID},
		})
		require.NoError(t, err)

		got, err := f.GetPlace(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, owner.ID, got.Owner.ID)
		var amenityIDs []domain.ID
		for _, a := range got.Amenities {
			amenityIDs = append(amenityIDs, a.ID)
		}
		require.ElementsMatch(t, []domain.ID{wifi.ID, pool.ID}, amenityIDs)

		r, err := f.CreateReview(ctx, domain.ActorOf(guest), facade.ReviewInput{Text: "Great!", Rating: 5, PlaceID: p.ID})
		require.NoError(t, err)
		_, err = f.CreateReview(ctx, domain.ActorOf(guest), facade.ReviewInput{Text: "Again", Rating: 4, PlaceID: p.ID})
		require.ErrorIs(t, err, serrors.ErrConflict)

		byPlace, err := f.GetReviewsByPlace(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, byPlace, 1)
		require.Equal(t, r.ID, byPlace[0].ID)

		renamed, err := f.UpdatePlace(ctx, domain.ActorOf(owner), p.ID, domain.Patch{"title": "Renovated"})
		require.NoError(t, err)
		require.Equal(t, "Renovated", renamed.Title)
		require.Len(t, renamed.Reviews, 1)

		_, err = f.DeleteReview(ctx, domain.ActorOf(guest), r.ID)
		require.NoError(t, err)
		byPlace, err = f.GetReviewsByPlace(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, byPlace)
		require.Empty(t, byPlace)
	})

	t.Run("failed place creation stores nothing", func(t *testing.T) {
		f, _, owner, _ := newPgWorld(t)

		_, err := f.CreatePlace(ctx, domain.ActorOf(owner), facade.PlaceInput{
			Title: "Loft", Price: 80, OwnerID: owner.ID, AmenityIDs: []domain.ID{domain.NewID()},
		})
		require.ErrorIs(t, err, serrors.ErrNotFound)

		all, err := f.GetAllPlaces(ctx)
		require.NoError(t, err)
		require.Empty(t, all)
	})

	t.Run("deleting a user removes its places and reviews", func(t *testing.T) {
		f, admin, owner, guest := newPgWorld(t)

		owned, err := f.CreatePlace(ctx, domain.ActorOf(owner), facade.PlaceInput{Title: "Loft", Price: 80, OwnerID: owner.ID})
		require.NoError(t, err)
		other, err := f.CreatePlace(ctx, admin, facade.PlaceInput{Title: "Cabin", Price: 50, OwnerID: admin.UserID})
		require.NoError(t, err)
		onOwned, err := f.CreateReview(ctx, domain.ActorOf(guest), facade.ReviewInput{Text: "Fine", Rating: 3, PlaceID: owned.ID})
		require.NoError(t, err)
		onOther, err := f.CreateReview(ctx, domain.ActorOf(owner), facade.ReviewInput{Text: "Cozy", Rating: 5, PlaceID: other.ID})
		require.NoError(t, err)

		deleted, err := f.DeleteUser(ctx, admin, owner.ID)
		require.NoError(t, err)
		require.Equal(t, owner.ID, deleted.ID)

		place, err := f.GetPlace(ctx, owned.ID)
		require.NoError(t, err)
		require.Nil(t, place)
		for _, id := range []domain.ID{onOwned.ID, onOther.ID} {
			r, err := f.GetReview(ctx, id)
			require.NoError(t, err)
			require.Nil(t, r)
		}

		remaining, err := f.GetPlace(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, remaining.Reviews)

		users, err := f.GetAllUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
	})
}
