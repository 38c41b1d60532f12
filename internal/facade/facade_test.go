package facade_test

import (
	"context"
	"testing"

	"hbnb/internal/facade"
	"hbnb/pkg/domain"
	"hbnb/pkg/logger"
	"hbnb/pkg/serrors"
	"hbnb/pkg/storage/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newFacade(t *testing.T) facade.Facade {
	t.Helper()

	return facade.New(memory.New(), facade.Options{AllowAdminBootstrap: true})
}

func createUser(t *testing.T, f facade.Facade, actor domain.Actor, email string, isAdmin bool) *domain.User {
	t.Helper()

	u, err := f.CreateUser(context.Background(), actor, facade.UserInput{
		FirstName: "A",
		LastName:  "B",
		Email:     email,
		Password:  "pw",
		IsAdmin:   isAdmin,
	})
	require.NoError(t, err)

	return u
}

type world struct {
	f     facade.Facade
	admin domain.Actor
	owner *domain.User
	guest *domain.User
	wifi  *domain.Amenity
	pool  *domain.Amenity
	place *domain.Place
}

// newWorld creates an admin, an owner with one place, a guest and two amenities.
func newWorld(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()

	w := &world{f: newFacade(t)}
	w.admin = domain.ActorOf(createUser(t, w.f, domain.Actor{}, "admin@hbnb.io", true))
	w.owner = createUser(t, w.f, domain.Actor{}, "owner@hbnb.io", false)
	w.guest = createUser(t, w.f, domain.Actor{}, "guest@hbnb.io", false)

	var err error
	w.wifi, err = w.f.CreateAmenity(ctx, w.admin, facade.AmenityInput{Name: "WiFi"})
	require.NoError(t, err)
	w.pool, err = w.f.CreateAmenity(ctx, w.admin, facade.AmenityInput{Name: "Pool"})
	require.NoError(t, err)

	w.place, err = w.f.CreatePlace(ctx, domain.ActorOf(w.owner), facade.PlaceInput{
		Title:      "Nice Apartment",
		Price:      120,
		Latitude:   24.7,
		Longitude:  46.6,
		OwnerID:    w.owner.ID,
		AmenityIDs: []domain.ID{w.wifi.ID},
	})
	require.NoError(t, err)

	return w
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFacade(t)

	u, err := f.CreateUser(ctx, domain.Actor{}, facade.UserInput{
		FirstName: "A", LastName: "B", Email: "a@b.com", Password: "pw",
	})
	require.NoError(t, err)
	require.True(t, u.VerifyPassword("pw"))

	_, err = f.CreateUser(ctx, domain.Actor{}, facade.UserInput{
		FirstName: "C", LastName: "D", Email: "a@b.com", Password: "pw2",
	})
	require.ErrorIs(t, err, serrors.ErrConflict)

	all, err := f.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	byEmail, err := f.GetUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Same(t, u, byEmail)
}

func TestCreateUser_ValidationErrorUnchanged(t *testing.T) {
	_, err := newFacade(t).CreateUser(context.Background(), domain.Actor{}, facade.UserInput{
		FirstName: "A", LastName: "B", Email: "not-an-email",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "email", verr.Field)
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func TestCreateUser_Admins(t *testing.T) {
	ctx := context.Background()

	t.Run("first user may bootstrap an admin", func(t *testing.T) {
		f := newFacade(t)
		root := createUser(t, f, domain.Actor{}, "root@hbnb.io", true)
		require.True(t, root.IsAdmin)

		_, err := f.CreateUser(ctx, domain.Actor{}, facade.UserInput{
			FirstName: "A", LastName: "B", Email: "x@hbnb.io", IsAdmin: true,
		})
		require.ErrorIs(t, err, serrors.ErrForbidden)

		plain := createUser(t, f, domain.Actor{}, "plain@hbnb.io", false)
		_, err = f.CreateUser(ctx, domain.ActorOf(plain), facade.UserInput{
			FirstName: "A", LastName: "B", Email: "y@hbnb.io", IsAdmin: true,
		})
		require.ErrorIs(t, err, serrors.ErrForbidden)

		second := createUser(t, f, domain.ActorOf(root), "second@hbnb.io", true)
		require.True(t, second.IsAdmin)
	})

	t.Run("bootstrap disabled", func(t *testing.T) {
		f := facade.New(memory.New(), facade.Options{})
		_, err := f.CreateUser(ctx, domain.Actor{}, facade.UserInput{
			FirstName: "A", LastName: "B", Email: "root@hbnb.io", IsAdmin: true,
		})
		require.ErrorIs(t, err, serrors.ErrForbidden)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	self := domain.ActorOf(w.guest)

	u, err := w.f.UpdateUser(ctx, self, w.guest.ID, domain.Patch{"first_name": "Guest", "id": domain.NewID()})
	require.NoError(t, err)
	require.Equal(t, "Guest", u.FirstName)
	require.Equal(t, w.guest.ID, u.ID)

	_, err = w.f.UpdateUser(ctx, self, w.owner.ID, domain.Patch{"first_name": "Hacked"})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	_, err = w.f.UpdateUser(ctx, self, w.guest.ID, domain.Patch{"is_admin": true})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	_, err = w.f.UpdateUser(ctx, self, w.guest.ID, domain.Patch{"email": "owner@hbnb.io"})
	require.ErrorIs(t, err, serrors.ErrConflict)

	_, err = w.f.UpdateUser(ctx, self, w.guest.ID, domain.Patch{"email": "broken", "last_name": "Changed"})
	require.ErrorIs(t, err, serrors.ErrValidation)
	reloaded, err := w.f.GetUser(ctx, w.guest.ID)
	require.NoError(t, err)
	require.Equal(t, "guest@hbnb.io", reloaded.Email)
	require.Equal(t, "B", reloaded.LastName)

	promoted, err := w.f.UpdateUser(ctx, w.admin, w.guest.ID, domain.Patch{"is_admin": true, "password": "secret"})
	require.NoError(t, err)
	require.True(t, promoted.IsAdmin)
	require.True(t, promoted.VerifyPassword("secret"))

	missing, err := w.f.UpdateUser(ctx, w.admin, domain.NewID(), domain.Patch{"first_name": "X"})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	u, err := w.f.Authenticate(ctx, "guest@hbnb.io", "pw")
	require.NoError(t, err)
	require.Equal(t, w.guest.ID, u.ID)

	_, err = w.f.Authenticate(ctx, "guest@hbnb.io", "wrong")
	require.ErrorIs(t, err, serrors.ErrUnauthorized)

	_, err = w.f.Authenticate(ctx, "nobody@hbnb.io", "pw")
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestAmenities(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	_, err := w.f.CreateAmenity(ctx, domain.ActorOf(w.guest), facade.AmenityInput{Name: "Sauna"})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	_, err = w.f.CreateAmenity(ctx, w.admin, facade.AmenityInput{Name: "WiFi"})
	require.ErrorIs(t, err, serrors.ErrConflict)

	_, err = w.f.CreateAmenity(ctx, w.admin, facade.AmenityInput{Name: ""})
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = w.f.UpdateAmenity(ctx, w.admin, w.pool.ID, domain.Patch{"name": "WiFi"})
	require.ErrorIs(t, err, serrors.ErrConflict)

	renamed, err := w.f.UpdateAmenity(ctx, w.admin, w.pool.ID, domain.Patch{"name": "Heated Pool"})
	require.NoError(t, err)
	require.Equal(t, "Heated Pool", renamed.Name)

	same, err := w.f.UpdateAmenity(ctx, w.admin, w.wifi.ID, domain.Patch{"name": "WiFi"})
	require.NoError(t, err)
	require.Equal(t, "WiFi", same.Name)

	missing, err := w.f.UpdateAmenity(ctx, w.admin, domain.NewID(), domain.Patch{"name": "X"})
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := w.f.GetAllAmenities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := w.f.GetAmenity(ctx, w.wifi.ID)
	require.NoError(t, err)
	require.Same(t, w.wifi, got)
}

func TestCreatePlace(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	in := facade.PlaceInput{Title: "Loft", Price: 80, OwnerID: w.owner.ID}

	_, err := w.f.CreatePlace(ctx, domain.ActorOf(w.guest), in)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)

	_, err = w.f.CreatePlace(ctx, domain.Actor{}, in)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)

	withUnknown := in
	withUnknown.AmenityIDs = []domain.ID{w.wifi.ID, domain.NewID()}
	_, err = w.f.CreatePlace(ctx, domain.ActorOf(w.owner), withUnknown)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	orphan := in
	orphan.OwnerID = domain.NewID()
	_, err = w.f.CreatePlace(ctx, w.admin, orphan)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	invalid := in
	invalid.Price = 0
	_, err = w.f.CreatePlace(ctx, domain.ActorOf(w.owner), invalid)
	require.ErrorIs(t, err, serrors.ErrValidation)

	all, err := w.f.GetAllPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "failed creations store nothing")

	withAmenities := in
	withAmenities.AmenityIDs = []domain.ID{w.wifi.ID, w.pool.ID, w.wifi.ID}
	p, err := w.f.CreatePlace(ctx, w.admin, withAmenities)
	require.NoError(t, err)
	require.Same(t, w.owner, p.Owner)
	require.Len(t, p.Amenities, 2)

	got, err := w.f.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	require.Same(t, p, got)
}

func TestUpdatePlace(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	owner := domain.ActorOf(w.owner)

	_, err := w.f.UpdatePlace(ctx, domain.ActorOf(w.guest), w.place.ID, domain.Patch{"title": "Mine"})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	p, err := w.f.UpdatePlace(ctx, owner, w.place.ID, domain.Patch{
		"title":     "Renovated",
		"amenities": []string{w.pool.ID.String(), w.wifi.ID.String()},
	})
	require.NoError(t, err)
	require.Equal(t, "Renovated", p.Title)
	require.Len(t, p.Amenities, 2)
	require.True(t, p.HasAmenity(w.pool.ID))

	_, err = w.f.UpdatePlace(ctx, owner, w.place.ID, domain.Patch{"amenities": []domain.ID{domain.NewID()}})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	_, err = w.f.UpdatePlace(ctx, owner, w.place.ID, domain.Patch{"amenities": []string{"nope"}})
	require.ErrorIs(t, err, serrors.ErrValidation)

	_, err = w.f.UpdatePlace(ctx, owner, w.place.ID, domain.Patch{"owner_id": w.guest.ID})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	_, err = w.f.UpdatePlace(ctx, owner, w.place.ID, domain.Patch{"latitude": 91})
	require.ErrorIs(t, err, serrors.ErrValidation)
	require.InDelta(t, 24.7, w.place.Latitude, 1e-9)

	p, err = w.f.UpdatePlace(ctx, w.admin, w.place.ID, domain.Patch{"owner_id": w.guest.ID.String()})
	require.NoError(t, err)
	require.Equal(t, w.guest.ID, p.Owner.ID)

	missing, err := w.f.UpdatePlace(ctx, w.admin, domain.NewID(), domain.Patch{"title": "X"})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	guest := domain.ActorOf(w.guest)

	_, err := w.f.CreateReview(ctx, domain.ActorOf(w.owner), facade.ReviewInput{Text: "Mine!", Rating: 5, PlaceID: w.place.ID})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	_, err = w.f.CreateReview(ctx, domain.Actor{}, facade.ReviewInput{Text: "Hi", Rating: 5, PlaceID: w.place.ID})
	require.ErrorIs(t, err, serrors.ErrUnauthorized)

	_, err = w.f.CreateReview(ctx, guest, facade.ReviewInput{Text: "Hi", Rating: 5, PlaceID: domain.NewID()})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	_, err = w.f.CreateReview(ctx, guest, facade.ReviewInput{Text: "Hi", Rating: 6, PlaceID: w.place.ID})
	require.ErrorIs(t, err, serrors.ErrValidation)
	require.Empty(t, w.place.Reviews)

	r, err := w.f.CreateReview(ctx, guest, facade.ReviewInput{Text: "Great!", Rating: 5, PlaceID: w.place.ID})
	require.NoError(t, err)
	require.Len(t, w.place.Reviews, 1)
	require.Same(t, r, w.place.Reviews[0])

	_, err = w.f.CreateReview(ctx, guest, facade.ReviewInput{Text: "Again", Rating: 4, PlaceID: w.place.ID})
	require.ErrorIs(t, err, serrors.ErrConflict)

	byPlace, err := w.f.GetReviewsByPlace(ctx, w.place.ID)
	require.NoError(t, err)
	require.Len(t, byPlace, 1)

	none, err := w.f.GetReviewsByPlace(ctx, domain.NewID())
	require.NoError(t, err)
	require.Nil(t, none)

	_, err = w.f.UpdateReview(ctx, w.admin, r.ID, domain.Patch{"rating": 1})
	require.ErrorIs(t, err, serrors.ErrForbidden)

	updated, err := w.f.UpdateReview(ctx, guest, r.ID, domain.Patch{"rating": 4, "text": "Good"})
	require.NoError(t, err)
	require.Equal(t, 4, updated.Rating)

	_, err = w.f.DeleteReview(ctx, domain.ActorOf(w.owner), r.ID)
	require.ErrorIs(t, err, serrors.ErrForbidden)

	deleted, err := w.f.DeleteReview(ctx, guest, r.ID)
	require.NoError(t, err)
	require.Equal(t, r.ID, deleted.ID)
	require.Empty(t, w.place.Reviews)

	gone, err := w.f.GetReview(ctx, r.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	again, err := w.f.DeleteReview(ctx, guest, r.ID)
	require.NoError(t, err)
	require.Nil(t, again)

	all, err := w.f.GetAllReviews(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestDeletePlace(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	r, err := w.f.CreateReview(ctx, domain.ActorOf(w.guest), facade.ReviewInput{Text: "Nice", Rating: 4, PlaceID: w.place.ID})
	require.NoError(t, err)

	_, err = w.f.DeletePlace(ctx, domain.ActorOf(w.guest), w.place.ID)
	require.ErrorIs(t, err, serrors.ErrForbidden)

	deleted, err := w.f.DeletePlace(ctx, domain.ActorOf(w.owner), w.place.ID)
	require.NoError(t, err)
	require.Equal(t, w.place.ID, deleted.ID)

	gone, err := w.f.GetReview(ctx, r.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	missing, err := w.f.DeletePlace(ctx, w.admin, w.place.ID)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	other, err := w.f.CreatePlace(ctx, w.admin, facade.PlaceInput{Title: "Cabin", Price: 50, OwnerID: w.admin.UserID})
	require.NoError(t, err)
	onOther, err := w.f.CreateReview(ctx, domain.ActorOf(w.owner), facade.ReviewInput{Text: "Cozy", Rating: 5, PlaceID: other.ID})
	require.NoError(t, err)
	onOwned, err := w.f.CreateReview(ctx, domain.ActorOf(w.guest), facade.ReviewInput{Text: "Fine", Rating: 3, PlaceID: w.place.ID})
	require.NoError(t, err)

	_, err = w.f.DeleteUser(ctx, domain.ActorOf(w.guest), w.owner.ID)
	require.ErrorIs(t, err, serrors.ErrForbidden)

	deleted, err := w.f.DeleteUser(ctx, w.admin, w.owner.ID)
	require.NoError(t, err)
	require.Equal(t, w.owner.ID, deleted.ID)

	place, err := w.f.GetPlace(ctx, w.place.ID)
	require.NoError(t, err)
	require.Nil(t, place)

	for _, id := range []domain.ID{onOther.ID, onOwned.ID} {
		r, err := w.f.GetReview(ctx, id)
		require.NoError(t, err)
		require.Nil(t, r)
	}
	require.Empty(t, other.Reviews)

	missing, err := w.f.DeleteUser(ctx, w.admin, w.owner.ID)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestDenialsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	w := newWorld(t)

	_, err := w.f.DeleteUser(ctx, domain.ActorOf(w.guest), w.owner.ID)
	require.Error(t, err)

	entries := logs.FilterMessage("operation denied").All()
	require.Len(t, entries, 1)
	require.Equal(t, "delete_user", entries[0].ContextMap()["operation"])
}
