package postgres

import (
	"context"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const amenitiesTable = "amenities"

type amenityRepository struct {
	pg *PgSQL
}

var _ storage.AmenityRepository = (*amenityRepository)(nil)

func (r *amenityRepository) Add(ctx context.Context, a *domain.Amenity) error {
	var row PgAmenity
	row.FromDomain(a)

	if _, err := r.pg.Builder.Insert(amenitiesTable).
		Rows(row).
		Executor().ExecContext(ctx); err != nil {
		return wrapError(err, "could not store amenity into pg")
	}

	return nil
}

func (r *amenityRepository) Get(ctx context.Context, id domain.ID) (*domain.Amenity, error) {
	amenities, err := r.load(ctx, goqu.I("id").Eq(uuid.UUID(id)))
	if err != nil || len(amenities) == 0 {
		return nil, err
	}

	return amenities[0], nil
}

func (r *amenityRepository) GetAll(ctx context.Context) ([]*domain.Amenity, error) {
	return r.load(ctx)
}

func (r *amenityRepository) Update(ctx context.Context, id domain.ID, patch domain.Patch) error {
	return r.pg.inTx(ctx, func(tx *PgSQL) error {
		a, err := tx.Amenities().Get(ctx, id)
		if err != nil || a == nil {
			return err
		}
		if err := a.Update(patch); err != nil {
			return err //nolint: wrapcheck
		}

		var row PgAmenity
		row.FromDomain(a)
		if _, err := tx.Builder.Update(amenitiesTable).
			Set(row).
			Where(goqu.I("id").Eq(row.ID)).
			Executor().ExecContext(ctx); err != nil {
			return wrapError(err, "could not update amenity in pg")
		}

		return nil
	})
}

func (r *amenityRepository) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, r.pg.Builder, amenitiesTable, uuid.UUID(id))
}

func (r *amenityRepository) GetByAttribute(ctx context.Context, name string, value any) (*domain.Amenity, error) {
	id, found, err := lookup(ctx, r.pg.Builder, amenitiesTable, amenityColumns, name, value)
	if err != nil || !found {
		return nil, err
	}

	return r.Get(ctx, domain.ID(id))
}

func (r *amenityRepository) load(ctx context.Context, where ...exp.Expression) ([]*domain.Amenity, error) {
	rows, err := selectRows[PgAmenity](ctx, r.pg.Builder, amenitiesTable, where...)
	if err != nil {
		return nil, err
	}

	amenities := make([]*domain.Amenity, 0, len(rows))
	for i := range rows {
		amenities = append(amenities, rows[i].ToDomain())
	}

	return amenities, nil
}
