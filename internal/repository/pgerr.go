package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres unique_violation. Uniqueness pre-checks in the services are
// best-effort; the unique indexes are the authoritative guard, so a late
// violation during commit must still surface as a conflict.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
