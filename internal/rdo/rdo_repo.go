package rdo

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
	"sige/internal/tenant"
)

var (
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"RDO not found",
		http.StatusNotFound,
	)

	ErrDuplicateNumero = apperror.New(
		apperror.CodeConflict,
		"RDO number already exists for this tenant",
		http.StatusConflict,
	)
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, r *RDO) error
	Delete(ctx context.Context, adminID, id int64) error
	FindByID(ctx context.Context, adminID, id int64) (*RDO, error)
	UpdateCustoTotal(ctx context.Context, adminID, id int64, custo decimal.Decimal) error
	UpdateStatus(ctx context.Context, adminID, id int64, status string) error
	CreateServico(ctx context.Context, s *RDOServico) error
	DeleteServicosByRDO(ctx context.Context, adminID, rdoID int64) error
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

func (r *repository) Create(ctx context.Context, rec *RDO) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), rec.AdminID)
	if err != nil {
		return err
	}
	if err := scoped.Create(rec).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateNumero
		}
		return err
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, adminID, id int64) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}
	return scoped.Where("id = ?", id).Delete(&RDO{}).Error
}

func (r *repository) FindByID(ctx context.Context, adminID, id int64) (*RDO, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var rec RDO
	if err := scoped.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) UpdateCustoTotal(ctx context.Context, adminID, id int64, custo decimal.Decimal) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}
	return scoped.Model(&RDO{}).Where("id = ?", id).Update("custo_total", custo).Error
}

func (r *repository) UpdateStatus(ctx context.Context, adminID, id int64, status string) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}
	return scoped.Model(&RDO{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) CreateServico(ctx context.Context, s *RDOServico) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), s.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(s).Error
}

func (r *repository) DeleteServicosByRDO(ctx context.Context, adminID, rdoID int64) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}
	return scoped.Where("rdo_id = ?", rdoID).Delete(&RDOServico{}).Error
}
