package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

// selectRows loads every row of table matching where, in insertion order.
func selectRows[R any](ctx context.Context, b Builder, table string, where ...exp.Expression) ([]R, error) {
	var rows []R
	if err := b.From(table).
		Where(where...).
		Order(goqu.I("seq").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not select from %s: %w", table, err)
	}

	return rows, nil
}

// findID returns the id of the first row of table whose column equals value.
func findID(ctx context.Context, b Builder, table, column string, value any) (uuid.UUID, bool, error) {
	var id uuid.UUID
	found, err := b.From(table).
		Select(goqu.I("id")).
		Where(goqu.I(column).Eq(value)).
		Order(goqu.I("seq").Asc()).
		Limit(1).
		Executor().ScanValContext(ctx, &id)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("could not look up %s by %s: %w", table, column, err)
	}

	return id, found, nil
}

// lookup resolves an attribute lookup against a whitelisted column to an id.
func lookup(ctx context.Context, b Builder, table string, columns map[string]columnKind,
	name string, value any) (uuid.UUID, bool, error) {
	kind, ok := columns[name]
	if !ok {
		return uuid.Nil, false, nil
	}
	v, ok := normalize(kind, value)
	if !ok {
		return uuid.Nil, false, nil
	}

	return findID(ctx, b, table, name, v)
}

func deleteByID(ctx context.Context, b Builder, table string, id uuid.UUID) error {
	if _, err := b.Delete(table).
		Where(goqu.I("id").Eq(id)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not delete from %s: %w", table, err)
	}

	return nil
}
