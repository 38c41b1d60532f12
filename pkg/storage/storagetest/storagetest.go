// Package storagetest holds the conformance suite every storage.Storage
// implementation must pass. Running the same suite against the memory and the
// postgres backends keeps their observable behaviour identical.
package storagetest

import (
	"context"
	"hbnb/pkg/domain"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty storage for a single subtest.
type Factory func(t *testing.T) storage.Storage

// Run executes the conformance suite against storages produced by newStorage.
func Run(t *testing.T, newStorage Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"user round trip", testUserRoundTrip},
		{"get missing", testGetMissing},
		{"get all in insertion order", testGetAllOrder},
		{"get by attribute", testGetByAttribute},
		{"update", testUpdate},
		{"update validation", testUpdateValidation},
		{"update missing", testUpdateMissing},
		{"delete", testDelete},
		{"delete cascades", testDeleteCascades},
		{"amenity round trip", testAmenityRoundTrip},
		{"place round trip", testPlaceRoundTrip},
		{"place amenities update", testPlaceAmenitiesUpdate},
		{"review round trip", testReviewRoundTrip},
		{"with tx", testWithTx},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStorage(t))
		})
	}
}

func mustUser(t *testing.T, s storage.AllStorage, first, email string) *domain.User {
	t.Helper()

	u, err := domain.NewUser(domain.UserParams{FirstName: first, LastName: "Tester", Email: email, Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.Users().Add(context.Background(), u))

	return u
}

func mustAmenity(t *testing.T, s storage.AllStorage, name string) *domain.Amenity {
	t.Helper()

	a, err := domain.NewAmenity(name)
	require.NoError(t, err)
	require.NoError(t, s.Amenities().Add(context.Background(), a))

	return a
}

func mustPlace(t *testing.T, s storage.AllStorage, owner *domain.User, amenities ...*domain.Amenity) *domain.Place {
	t.Helper()

	p, err := domain.NewPlace(domain.PlaceParams{
		Title:       "Nice Apartment",
		Description: "Near downtown",
		Price:       250.5,
		Latitude:    24.7136,
		Longitude:   46.6753,
		Location:    "Riyadh",
		Owner:       owner,
		Amenities:   amenities,
	})
	require.NoError(t, err)
	require.NoError(t, s.Places().Add(context.Background(), p))

	return p
}

func requireSameBase(t *testing.T, want, got domain.Base) {
	t.Helper()

	require.Equal(t, want.ID, got.ID)
	require.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %s got %s", want.CreatedAt, got.CreatedAt)
	require.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at: want %s got %s", want.UpdatedAt, got.UpdatedAt)
}

func requireSameUser(t *testing.T, want, got *domain.User) {
	t.Helper()

	require.NotNil(t, got)
	requireSameBase(t, want.Base, got.Base)
	require.Equal(t, want.FirstName, got.FirstName)
	require.Equal(t, want.LastName, got.LastName)
	require.Equal(t, want.Email, got.Email)
	require.Equal(t, want.IsAdmin, got.IsAdmin)
	require.Equal(t, want.HashedPassword(), got.HashedPassword())
}

func amenityIDs(amenities []*domain.Amenity) []domain.ID {
	ids := make([]domain.ID, 0, len(amenities))
	for _, a := range amenities {
		ids = append(ids, a.ID)
	}

	return ids
}

func reviewIDs(reviews []*domain.Review) []domain.ID {
	ids := make([]domain.ID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}

	return ids
}

func testUserRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "A", "a@b.com")

	got, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	requireSameUser(t, u, got)
	require.True(t, got.VerifyPassword("pw"))
}

func testGetMissing(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	u, err := s.Users().Get(ctx, domain.NewID())
	require.NoError(t, err)
	require.Nil(t, u)

	p, err := s.Places().Get(ctx, domain.NewID())
	require.NoError(t, err)
	require.Nil(t, p)

	a, err := s.Amenities().Get(ctx, domain.NewID())
	require.NoError(t, err)
	require.Nil(t, a)

	r, err := s.Reviews().Get(ctx, domain.NewID())
	require.NoError(t, err)
	require.Nil(t, r)
}

func testGetAllOrder(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	all, err := s.Amenities().GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	names := []string{"WiFi", "Pool", "Kitchen", "Parking"}
	var want []domain.ID
	for _, n := range names {
		want = append(want, mustAmenity(t, s, n).ID)
	}

	all, err = s.Amenities().GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, want, amenityIDs(all))
}

func testGetByAttribute(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a := mustUser(t, s, "A", "a@b.com")
	mustUser(t, s, "B", "b@b.com")

	got, err := s.Users().GetByAttribute(ctx, "email", "a@b.com")
	require.NoError(t, err)
	requireSameUser(t, a, got)

	got, err = s.Users().GetByAttribute(ctx, "email", "nobody@b.com")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = s.Users().GetByAttribute(ctx, "first_name", "A")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, a.ID, got.ID)

	got, err = s.Users().GetByAttribute(ctx, "id", a.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, a.ID, got.ID)

	got, err = s.Users().GetByAttribute(ctx, "password_hash", a.HashedPassword())
	require.NoError(t, err)
	require.Nil(t, got, "unknown attributes never match")

	place := mustPlace(t, s, a)
	p, err := s.Places().GetByAttribute(ctx, "owner_id", a.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, place.ID, p.ID)

	p, err = s.Places().GetByAttribute(ctx, "owner_id", uuid.UUID(a.ID))
	require.NoError(t, err)
	require.NotNil(t, p)

	for _, price := range []any{250.5, float32(250.5)} {
		p, err = s.Places().GetByAttribute(ctx, "price", price)
		require.NoError(t, err)
		require.NotNil(t, p, "price as %T", price)
	}

	p, err = s.Places().GetByAttribute(ctx, "price", 1)
	require.NoError(t, err)
	require.Nil(t, p)
}

func testUpdate(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "A", "a@b.com")

	require.NoError(t, s.Users().Update(ctx, u.ID, domain.Patch{
		"first_name": "Alice",
		"id":         domain.NewID(),
		"is_admin":   true,
	}))

	got, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "Alice", got.FirstName)
	require.True(t, got.IsAdmin)
	require.False(t, got.UpdatedAt.Before(got.CreatedAt))
	require.False(t, got.UpdatedAt.Before(u.CreatedAt))
}

func testUpdateValidation(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "A", "a@b.com")

	err := s.Users().Update(ctx, u.ID, domain.Patch{"email": "not-an-email", "first_name": "Changed"})
	require.ErrorIs(t, err, serrors.ErrValidation)

	got, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got.Email)
	require.Equal(t, "A", got.FirstName)
}

func testUpdateMissing(t *testing.T, s storage.Storage) {
	require.NoError(t, s.Users().Update(context.Background(), domain.NewID(), domain.Patch{"first_name": "X"}))
}

func testDelete(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	u := mustUser(t, s, "A", "a@b.com")
	keep := mustUser(t, s, "B", "b@b.com")

	require.NoError(t, s.Users().Delete(ctx, u.ID))
	got, err := s.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, s.Users().Delete(ctx, u.ID))
	require.NoError(t, s.Users().Delete(ctx, domain.NewID()))

	all, err := s.Users().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, keep.ID, all[0].ID)
}

func mustReview(t *testing.T, s storage.AllStorage, author *domain.User, place *domain.Place) *domain.Review {
	t.Helper()

	r, err := domain.NewReview(domain.ReviewParams{Text: "Lovely stay", Rating: 4, User: author, Place: place})
	require.NoError(t, err)
	require.NoError(t, s.Reviews().Add(context.Background(), r))

	return r
}

func testDeleteCascades(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	owner := mustUser(t, s, "A", "a@b.com")
	author := mustUser(t, s, "B", "b@b.com")
	guest := mustUser(t, s, "C", "c@b.com")
	wifi := mustAmenity(t, s, "WiFi")
	pool := mustAmenity(t, s, "Pool")
	p := mustPlace(t, s, owner, wifi, pool)
	q := mustPlace(t, s, author, wifi)
	kept := mustReview(t, s, author, p)
	dropped := mustReview(t, s, guest, p)
	byOwner := mustReview(t, s, owner, q)

	require.NoError(t, s.Reviews().Delete(ctx, dropped.ID))
	got, err := s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.ID{kept.ID}, reviewIDs(got.Reviews))

	require.NoError(t, s.Amenities().Delete(ctx, wifi.ID))
	got, err = s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.ID{pool.ID}, amenityIDs(got.Amenities))
	got, err = s.Places().Get(ctx, q.ID)
	require.NoError(t, err)
	require.Empty(t, got.Amenities)

	require.NoError(t, s.Users().Delete(ctx, owner.ID))
	got, err = s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got)
	for _, id := range []domain.ID{kept.ID, byOwner.ID} {
		r, err := s.Reviews().Get(ctx, id)
		require.NoError(t, err)
		require.Nil(t, r)
	}

	places, err := s.Places().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)
	require.Equal(t, q.ID, places[0].ID)
	require.Empty(t, places[0].Reviews)

	reviews, err := s.Reviews().GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, reviews)

	require.NoError(t, s.Places().Delete(ctx, q.ID))
	users, err := s.Users().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func testAmenityRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a := mustAmenity(t, s, "WiFi")

	got, err := s.Amenities().Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	requireSameBase(t, a.Base, got.Base)
	require.Equal(t, "WiFi", got.Name)

	got, err = s.Amenities().GetByAttribute(ctx, "name", "WiFi")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, a.ID, got.ID)
}

func testPlaceRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	owner := mustUser(t, s, "A", "a@b.com")
	wifi := mustAmenity(t, s, "WiFi")
	pool := mustAmenity(t, s, "Pool")
	p := mustPlace(t, s, owner, wifi, pool, wifi)

	got, err := s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	requireSameBase(t, p.Base, got.Base)
	require.Equal(t, p.Title, got.Title)
	require.Equal(t, p.Description, got.Description)
	require.Equal(t, p.Location, got.Location)
	require.InDelta(t, p.Price, got.Price, 1e-9)
	require.InDelta(t, p.Latitude, got.Latitude, 1e-9)
	require.InDelta(t, p.Longitude, got.Longitude, 1e-9)
	requireSameUser(t, owner, got.Owner)
	require.ElementsMatch(t, []domain.ID{wifi.ID, pool.ID}, amenityIDs(got.Amenities))
	require.Empty(t, got.Reviews)

	all, err := s.Places().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, p.ID, all[0].ID)
}

func testPlaceAmenitiesUpdate(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	owner := mustUser(t, s, "A", "a@b.com")
	other := mustUser(t, s, "B", "b@b.com")
	wifi := mustAmenity(t, s, "WiFi")
	pool := mustAmenity(t, s, "Pool")
	p := mustPlace(t, s, owner, wifi)

	require.NoError(t, s.Places().Update(ctx, p.ID, domain.Patch{
		"amenities": []*domain.Amenity{pool},
		"owner":     other,
		"price":     99,
	}))

	got, err := s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []domain.ID{pool.ID}, amenityIDs(got.Amenities))
	require.Equal(t, other.ID, got.Owner.ID)
	require.InDelta(t, 99.0, got.Price, 1e-9)

	err = s.Places().Update(ctx, p.ID, domain.Patch{"title": ""})
	require.ErrorIs(t, err, serrors.ErrValidation)
	got, err = s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Nice Apartment", got.Title)
}

func testReviewRoundTrip(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	owner := mustUser(t, s, "A", "a@b.com")
	author := mustUser(t, s, "B", "b@b.com")
	second := mustUser(t, s, "C", "c@b.com")
	p := mustPlace(t, s, owner)

	var want []domain.ID
	for i, u := range []*domain.User{author, second} {
		text := []string{"Great!", "Still great"}[i]
		r, err := domain.NewReview(domain.ReviewParams{Text: text, Rating: 5, User: u, Place: p})
		require.NoError(t, err)
		require.NoError(t, s.Reviews().Add(ctx, r))
		want = append(want, r.ID)
	}

	got, err := s.Places().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, want, reviewIDs(got.Reviews))

	r, err := s.Reviews().Get(ctx, want[0])
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, "Great!", r.Text)
	require.Equal(t, 5, r.Rating)
	require.Equal(t, author.ID, r.User.ID)
	require.Equal(t, p.ID, r.Place.ID)
	require.Equal(t, want, reviewIDs(r.Place.Reviews))

	byPlace, err := s.Reviews().GetByAttribute(ctx, "place_id", p.ID)
	require.NoError(t, err)
	require.NotNil(t, byPlace)
	require.Equal(t, want[0], byPlace.ID)

	require.NoError(t, s.Reviews().Update(ctx, want[1], domain.Patch{"rating": 2}))
	updated, err := s.Reviews().Get(ctx, want[1])
	require.NoError(t, err)
	require.Equal(t, 2, updated.Rating)

	all, err := s.Reviews().GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, want, reviewIDs(all))
}

func testWithTx(t *testing.T, s storage.Storage) {
	ctx := context.Background()

	var created *domain.User
	require.NoError(t, s.WithTx(ctx, func(tx storage.AllStorage) error {
		created = mustUser(t, tx, "A", "a@b.com")

		return nil
	}))

	got, err := s.Users().Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}
