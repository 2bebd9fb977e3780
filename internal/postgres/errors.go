package postgres

import (
	"errors"

	"github.com/cwrk-planet/meeting-service/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return domain.ErrInvalidInput
		case "23505": // unique_violation
			return domain.ErrAlreadyJoined
		case "23514": // check_violation
			return domain.ErrInvalidInput
		}
	}
	return err
}
