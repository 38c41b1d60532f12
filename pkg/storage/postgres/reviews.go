package postgres

import (
	"context"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const reviewsTable = "reviews"

type reviewRepository struct {
	pg *PgSQL
}

var _ storage.ReviewRepository = (*reviewRepository)(nil)

func (r *reviewRepository) Add(ctx context.Context, review *domain.Review) error {
	var row PgReview
	row.FromDomain(review)

	if _, err := r.pg.Builder.Insert(reviewsTable).
		Rows(row).
		Executor().ExecContext(ctx); err != nil {
		return wrapError(err, "could not store review into pg")
	}

	return nil
}

func (r *reviewRepository) Get(ctx context.Context, id domain.ID) (*domain.Review, error) {
	reviews, err := r.load(ctx, goqu.I("id").Eq(uuid.UUID(id)))
	if err != nil || len(reviews) == 0 {
		return nil, err
	}

	return reviews[0], nil
}

func (r *reviewRepository) GetAll(ctx context.Context) ([]*domain.Review, error) {
	return r.load(ctx)
}

func (r *reviewRepository) Update(ctx context.Context, id domain.ID, patch domain.Patch) error {
	return r.pg.inTx(ctx, func(tx *PgSQL) error {
		review, err := tx.Reviews().Get(ctx, id)
		if err != nil || review == nil {
			return err
		}
		if err := review.Update(patch); err != nil {
			return err //nolint: wrapcheck
		}

		var row PgReview
		row.FromDomain(review)
		if _, err := tx.Builder.Update(reviewsTable).
			Set(row).
			Where(goqu.I("id").Eq(row.ID)).
			Executor().ExecContext(ctx); err != nil {
			return wrapError(err, "could not update review in pg")
		}

		return nil
	})
}

func (r *reviewRepository) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, r.pg.Builder, reviewsTable, uuid.UUID(id))
}

func (r *reviewRepository) GetByAttribute(ctx context.Context, name string, value any) (*domain.Review, error) {
	id, found, err := lookup(ctx, r.pg.Builder, reviewsTable, reviewColumns, name, value)
	if err != nil || !found {
		return nil, err
	}

	return r.Get(ctx, domain.ID(id))
}

// load resolves matching reviews through their places, so that each returned
// review is the object held in review.Place.Reviews.
func (r *reviewRepository) load(ctx context.Context, where ...exp.Expression) ([]*domain.Review, error) {
	rows, err := selectRows[PgReview](ctx, r.pg.Builder, reviewsTable, where...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}

	placeIDs := uuidsOf(rows, func(row PgReview) uuid.UUID { return row.PlaceID })
	places, err := loadPlaces(ctx, r.pg.Builder, goqu.I("id").In(placeIDs))
	if err != nil {
		return nil, err
	}

	byID := make(map[domain.ID]*domain.Review, len(rows))
	for _, p := range places {
		for _, review := range p.Reviews {
			byID[review.ID] = review
		}
	}

	reviews := make([]*domain.Review, 0, len(rows))
	for _, row := range rows {
		if review, ok := byID[domain.ID(row.ID)]; ok {
			reviews = append(reviews, review)
		}
	}

	return reviews, nil
}
