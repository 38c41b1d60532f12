package postgres

import (
	"errors"
	"fmt"

	"hbnb/pkg/serrors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// wrapError wraps err with msg, tagging constraint violations with the
// matching semantic kind.
func wrapError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return serrors.Wrap(serrors.ErrConflict, err, "%s", msg)
		case pgerrcode.ForeignKeyViolation:
			return serrors.Wrap(serrors.ErrNotFound, err, "%s", msg)
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}
