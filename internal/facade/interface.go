package facade

import (
	"context"

	"hbnb/pkg/domain"
)

// Facade is the single entry point of the application core. Mutations take the
// acting user so that ownership and admin rules are checked in one place.
//
//go:generate mockgen -package mockfacade -source=interface.go -destination=mock/mockfacade.go *
type Facade interface {
	CreateUser(ctx context.Context, actor domain.Actor, in UserInput) (*domain.User, error)
	GetUser(ctx context.Context, id domain.ID) (*domain.User, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, id domain.ID, patch domain.Patch) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, id domain.ID) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	CreateAmenity(ctx context.Context, actor domain.Actor, in AmenityInput) (*domain.Amenity, error)
	GetAmenity(ctx context.Context, id domain.ID) (*domain.Amenity, error)
	GetAllAmenities(ctx context.Context) ([]*domain.Amenity, error)
	UpdateAmenity(ctx context.Context, actor domain.Actor, id domain.ID, patch domain.Patch) (*domain.Amenity, error)

	CreatePlace(ctx context.Context, actor domain.Actor, in PlaceInput) (*domain.Place, error)
	GetPlace(ctx context.Context, id domain.ID) (*domain.Place, error)
	GetAllPlaces(ctx context.Context) ([]*domain.Place, error)
	UpdatePlace(ctx context.Context, actor domain.Actor, id domain.ID, patch domain.Patch) (*domain.Place, error)
	DeletePlace(ctx context.Context, actor domain.Actor, id domain.ID) (*domain.Place, error)

	CreateReview(ctx context.Context, actor domain.Actor, in ReviewInput) (*domain.Review, error)
	GetReview(ctx context.Context, id domain.ID) (*domain.Review, error)
	GetAllReviews(ctx context.Context) ([]*domain.Review, error)
	GetReviewsByPlace(ctx context.Context, placeID domain.ID) ([]*domain.Review, error)
	UpdateReview(ctx context.Context, actor domain.Actor, id domain.ID, patch domain.Patch) (*domain.Review, error)
	DeleteReview(ctx context.Context, actor domain.Actor, id domain.ID) (*domain.Review, error)
}

// UserInput holds the fields of a registration.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// AmenityInput holds the fields of a new amenity.
type AmenityInput struct {
	Name string
}

// PlaceInput holds the fields of a new place. References are given by id and
// resolved against the storage.
type PlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	Location    string
	OwnerID     domain.ID
	AmenityIDs  []domain.ID
}

// ReviewInput holds the fields of a new review. The author is the actor.
type ReviewInput struct {
	Text    string
	Rating  int
	PlaceID domain.ID
}
