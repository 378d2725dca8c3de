// Package sqlerr maps driver-level errors onto the shared sentinel taxonomy
// so callers never need to inspect pgconn details themselves.
package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkarpovs/studynotes/internal/common"
)

// Map converts err into one of the common sentinels where possible:
// sql.ErrNoRows -> ErrorNotFound, unique violations -> ErrorAlreadyExists,
// foreign-key violations -> ErrorValidation. Anything else is wrapped.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return common.ErrorAlreadyExists
		case pgerrcode.ForeignKeyViolation, pgerrcode.InvalidTextRepresentation:
			// invalid_text_representation covers malformed uuid references,
			// which a client can trigger the same way as a bad parent id
			return common.ErrorValidation
		}
	}

	return fmt.Errorf("db error: %w", err)
}
