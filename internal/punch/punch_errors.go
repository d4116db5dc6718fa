package punch

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
		"Registro de ponto not found",
		http.StatusNotFound,
	)

	ErrDuplicateDay = apperror.New(
		apperror.CodeConflict,
		"Employee already has a punch record for this date",
		http.StatusConflict,
	)

	ErrUnknownTipo = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown punch record kind",
		http.StatusBadRequest,
	)
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateDay
	}

	return err
}
