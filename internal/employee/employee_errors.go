package employee

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
)

var (
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"Funcionario not found",
		http.StatusNotFound,
	)

	ErrDuplicateCode = apperror.New(
		apperror.CodeConflict,
		"Funcionario code already in use for this tenant",
		http.StatusConflict,
	)
)

// mapError translates driver errors to domain errors; anything else
// passes through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}

	return err
}
