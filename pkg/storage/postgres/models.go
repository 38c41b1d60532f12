package postgres

import (
	"time"

	"hbnb/pkg/domain"

	"github.com/google/uuid"
)

// Rows carry a seq column filled by the database. It records insertion order
// and is never exposed to the domain.

type PgUser struct {
	Seq int64     `db:"seq" goqu:"skipinsert,skipupdate"`
	ID  uuid.UUID `db:"id"  goqu:"skipupdate"`

	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`

	CreatedAt time.Time `db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *PgUser) ToDomain() *domain.User {
	u := &domain.User{
		Base:      base(p.ID, p.CreatedAt, p.UpdatedAt),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		IsAdmin:   p.IsAdmin,
	}
	u.RestoreHashedPassword(p.PasswordHash)

	return u
}

func (p *PgUser) FromDomain(u *domain.User) {
	*p = PgUser{
		ID:           uuid.UUID(u.ID),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.HashedPassword(),
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type PgAmenity struct {
	Seq int64     `db:"seq" goqu:"skipinsert,skipupdate"`
	ID  uuid.UUID `db:"id"  goqu:"skipupdate"`

	Name string `db:"name"`

	CreatedAt time.Time `db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *PgAmenity) ToDomain() *domain.Amenity {
	return &domain.Amenity{
		Base: base(p.ID, p.CreatedAt, p.UpdatedAt),
		Name: p.Name,
	}
}

func (p *PgAmenity) FromDomain(a *domain.Amenity) {
	*p = PgAmenity{
		ID:        uuid.UUID(a.ID),
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type PgPlace struct {
	Seq     int64     `db:"seq"      goqu:"skipinsert,skipupdate"`
	ID      uuid.UUID `db:"id"       goqu:"skipupdate"`
	OwnerID uuid.UUID `db:"owner_id"`

	Title       string  `db:"title"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Latitude    float64 `db:"latitude"`
	Longitude   float64 `db:"longitude"`
	Location    string  `db:"location"`

	CreatedAt time.Time `db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToDomain converts the row without its references; the caller links the
// owner, amenities and reviews.
func (p *PgPlace) ToDomain() *domain.Place {
	return &domain.Place{
		Base:        base(p.ID, p.CreatedAt, p.UpdatedAt),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Location:    p.Location,
	}
}

func (p *PgPlace) FromDomain(place *domain.Place) {
	*p = PgPlace{
		ID:          uuid.UUID(place.ID),
		Title:       place.Title,
		Description: place.Description,
		Price:       place.Price,
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		Location:    place.Location,
		CreatedAt:   place.CreatedAt,
		UpdatedAt:   place.UpdatedAt,
	}
	if place.Owner != nil {
		p.OwnerID = uuid.UUID(place.Owner.ID)
	}
}

type PgPlaceAmenity struct {
	Seq       int64     `db:"seq"        goqu:"skipinsert"`
	PlaceID   uuid.UUID `db:"place_id"`
	AmenityID uuid.UUID `db:"amenity_id"`
}

type PgReview struct {
	Seq     int64     `db:"seq"      goqu:"skipinsert,skipupdate"`
	ID      uuid.UUID `db:"id"       goqu:"skipupdate"`
	UserID  uuid.UUID `db:"user_id"  goqu:"skipupdate"`
	PlaceID uuid.UUID `db:"place_id" goqu:"skipupdate"`

	Text   string `db:"text"`
	Rating int    `db:"rating"`

	CreatedAt time.Time `db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *PgReview) FromDomain(r *domain.Review) {
	*p = PgReview{
		ID:        uuid.UUID(r.ID),
		Text:      r.Text,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		p.UserID = uuid.UUID(r.User.ID)
	}
	if r.Place != nil {
		p.PlaceID = uuid.UUID(r.Place.ID)
	}
}

func base(id uuid.UUID, createdAt, updatedAt time.Time) domain.Base {
	return domain.Base{
		ID:        domain.ID(id),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
}

func uuidsOf[T any](rows []T, id func(T) uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(rows))
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		v := id(r)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	return out
}
