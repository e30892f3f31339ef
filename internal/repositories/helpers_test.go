package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func stringPtr(s string) *string {
	return &s
}

func int64Ptr(i int64) *int64 {
	return &i
}

var errConnRefused = errors.New("database connection failed")

func uniqueViolationErr() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}
