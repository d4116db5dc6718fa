package material

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"sige/internal/shared/apperror"
	"sige/internal/tenant"
)

var ErrUnknownTipo = apperror.New(
	apperror.CodeInvalidInput,
	"Movement kind must be ENTRADA or SAIDA",
	http.StatusBadRequest,
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, m *MovimentoMaterial) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, m *MovimentoMaterial) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), m.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(m).Error
}
