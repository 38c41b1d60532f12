package postgres

import (
	"context"
	"fmt"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	placesTable         = "places"
	placeAmenitiesTable = "place_amenities"
)

type placeRepository struct {
	pg *PgSQL
}

var _ storage.PlaceRepository = (*placeRepository)(nil)

// Add stores the place row together with its amenity links.
func (r *placeRepository) Add(ctx context.Context, place *domain.Place) error {
	return r.pg.inTx(ctx, func(tx *PgSQL) error {
		var row PgPlace
		row.FromDomain(place)

		if _, err := tx.Builder.Insert(placesTable).
			Rows(row).
			Executor().ExecContext(ctx); err != nil {
			return wrapError(err, "could not store place into pg")
		}

		return storeAmenityLinks(ctx, tx.Builder, row.ID, place.Amenities)
	})
}

func (r *placeRepository) Get(ctx context.Context, id domain.ID) (*domain.Place, error) {
	places, err := loadPlaces(ctx, r.pg.Builder, goqu.I("id").Eq(uuid.UUID(id)))
	if err != nil || len(places) == 0 {
		return nil, err
	}

	return places[0], nil
}

func (r *placeRepository) GetAll(ctx context.Context) ([]*domain.Place, error) {
	return loadPlaces(ctx, r.pg.Builder)
}

// Update applies patch to the loaded aggregate and writes back the row and
// its amenity links.
func (r *placeRepository) Update(ctx context.Context, id domain.ID, patch domain.Patch) error {
	return r.pg.inTx(ctx, func(tx *PgSQL) error {
		place, err := tx.Places().Get(ctx, id)
		if err != nil || place == nil {
			return err
		}
		if err := place.Update(patch); err != nil {
			return err //nolint: wrapcheck
		}

		var row PgPlace
		row.FromDomain(place)
		if _, err := tx.Builder.Update(placesTable).
			Set(row).
			Where(goqu.I("id").Eq(row.ID)).
			Executor().ExecContext(ctx); err != nil {
			return wrapError(err, "could not update place in pg")
		}

		if _, err := tx.Builder.Delete(placeAmenitiesTable).
			Where(goqu.I("place_id").Eq(row.ID)).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("could not clear place amenities in pg: %w", err)
		}

		return storeAmenityLinks(ctx, tx.Builder, row.ID, place.Amenities)
	})
}

func (r *placeRepository) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, r.pg.Builder, placesTable, uuid.UUID(id))
}

func (r *placeRepository) GetByAttribute(ctx context.Context, name string, value any) (*domain.Place, error) {
	id, found, err := lookup(ctx, r.pg.Builder, placesTable, placeColumns, name, value)
	if err != nil || !found {
		return nil, err
	}

	return r.Get(ctx, domain.ID(id))
}

func storeAmenityLinks(ctx context.Context, b Builder, placeID uuid.UUID, amenities []*domain.Amenity) error {
	if len(amenities) == 0 {
		return nil
	}

	links := make([]PgPlaceAmenity, 0, len(amenities))
	for _, a := range amenities {
		links = append(links, PgPlaceAmenity{PlaceID: placeID, AmenityID: uuid.UUID(a.ID)})
	}

	if _, err := b.Insert(placeAmenitiesTable).
		Rows(links).
		Executor().ExecContext(ctx); err != nil {
		return wrapError(err, "could not store place amenities into pg")
	}

	return nil
}

// loadPlaces hydrates the places matching where: each one gets its owner, its
// amenities in link order and its reviews in creation order. Users shared by
// several places or reviews are loaded once and shared.
func loadPlaces(ctx context.Context, b Builder, where ...exp.Expression) ([]*domain.Place, error) {
	rows, err := selectRows[PgPlace](ctx, b, placesTable, where...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}

	placeIDs := uuidsOf(rows, func(r PgPlace) uuid.UUID { return r.ID })

	links, err := selectRows[PgPlaceAmenity](ctx, b, placeAmenitiesTable, goqu.I("place_id").In(placeIDs))
	if err != nil {
		return nil, err
	}
	amenityRows, err := amenitiesFor(ctx, b, uuidsOf(links, func(l PgPlaceAmenity) uuid.UUID { return l.AmenityID }))
	if err != nil {
		return nil, err
	}

	reviewRows, err := selectRows[PgReview](ctx, b, reviewsTable, goqu.I("place_id").In(placeIDs))
	if err != nil {
		return nil, err
	}

	userIDs := append(
		uuidsOf(rows, func(r PgPlace) uuid.UUID { return r.OwnerID }),
		uuidsOf(reviewRows, func(r PgReview) uuid.UUID { return r.UserID })...,
	)
	users, err := usersByID(ctx, b, uuidsOf(userIDs, func(id uuid.UUID) uuid.UUID { return id }))
	if err != nil {
		return nil, err
	}

	places := make([]*domain.Place, 0, len(rows))
	byID := make(map[uuid.UUID]*domain.Place, len(rows))
	for i := range rows {
		place := rows[i].ToDomain()
		place.Owner = users[rows[i].OwnerID]
		places = append(places, place)
		byID[rows[i].ID] = place
	}

	for _, l := range links {
		if a, ok := amenityRows[l.AmenityID]; ok {
			byID[l.PlaceID].AddAmenity(a)
		}
	}

	for i := range reviewRows {
		row := reviewRows[i]
		place := byID[row.PlaceID]
		place.AddReview(&domain.Review{
			Base:   base(row.ID, row.CreatedAt, row.UpdatedAt),
			Text:   row.Text,
			Rating: row.Rating,
			User:   users[row.UserID],
			Place:  place,
		})
	}

	return places, nil
}

func amenitiesFor(ctx context.Context, b Builder, ids []uuid.UUID) (map[uuid.UUID]*domain.Amenity, error) {
	out := make(map[uuid.UUID]*domain.Amenity, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := selectRows[PgAmenity](ctx, b, amenitiesTable, goqu.I("id").In(ids))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].ToDomain()
	}

	return out, nil
}
