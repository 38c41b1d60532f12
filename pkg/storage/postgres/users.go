package postgres

import (
	"context"

	"hbnb/pkg/domain"
	"hbnb/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const usersTable = "users"

type userRepository struct {
	pg *PgSQL
}

var _ storage.UserRepository = (*userRepository)(nil)

func (r *userRepository) Add(ctx context.Context, u *domain.User) error {
	var row PgUser
	row.FromDomain(u)

	if _, err := r.pg.Builder.Insert(usersTable).
		Rows(row).
		Executor().ExecContext(ctx); err != nil {
		return wrapError(err, "could not store user into pg")
	}

	return nil
}

func (r *userRepository) Get(ctx context.Context, id domain.ID) (*domain.User, error) {
	users, err := r.load(ctx, goqu.I("id").Eq(uuid.UUID(id)))
	if err != nil || len(users) == 0 {
		return nil, err
	}

	return users[0], nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	return r.load(ctx)
}

func (r *userRepository) Update(ctx context.Context, id domain.ID, patch domain.Patch) error {
	return r.pg.inTx(ctx, func(tx *PgSQL) error {
		u, err := tx.Users().Get(ctx, id)
		if err != nil || u == nil {
			return err
		}
		if err := u.Update(patch); err != nil {
			return err //nolint: wrapcheck
		}

		var row PgUser
		row.FromDomain(u)
		if _, err := tx.Builder.Update(usersTable).
			Set(row).
			Where(goqu.I("id").Eq(row.ID)).
			Executor().ExecContext(ctx); err != nil {
			return wrapError(err, "could not update user in pg")
		}

		return nil
	})
}

func (r *userRepository) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, r.pg.Builder, usersTable, uuid.UUID(id))
}

func (r *userRepository) GetByAttribute(ctx context.Context, name string, value any) (*domain.User, error) {
	id, found, err := lookup(ctx, r.pg.Builder, usersTable, userColumns, name, value)
	if err != nil || !found {
		return nil, err
	}

	return r.Get(ctx, domain.ID(id))
}

func (r *userRepository) load(ctx context.Context, where ...exp.Expression) ([]*domain.User, error) {
	rows, err := selectRows[PgUser](ctx, r.pg.Builder, usersTable, where...)
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].ToDomain())
	}

	return users, nil
}

// usersByID loads the given users keyed by id.
func usersByID(ctx context.Context, b Builder, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	out := make(map[uuid.UUID]*domain.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := selectRows[PgUser](ctx, b, usersTable, goqu.I("id").In(ids))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].ToDomain()
	}

	return out, nil
}
