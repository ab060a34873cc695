// Package pgerr maps PostgreSQL error codes onto the repository sentinels.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation  = "23505"
	codeInvalidTextInput = "22P02"
)

// IsUniqueViolation reports a duplicate key.
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsInvalidText reports a value the column type could not parse, such as a
// malformed UUID in a path parameter.
func IsInvalidText(err error) bool {
	return hasCode(err, codeInvalidTextInput)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
