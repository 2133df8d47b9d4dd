package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/partlane/partlane/modules/catalog/domain/entities/bomitem"
)

// mapPgError translates constraint violations raised at write time into the
// domain conflict error so callers can roll back and report cleanly.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return bomitem.ErrConflict.WithDetails(pgErr.ConstraintName)
	case "23503": // foreign_key_violation
		return bomitem.ErrConflict.WithDetails(pgErr.ConstraintName)
	default:
		return err
	}
}
