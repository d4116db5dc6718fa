package payroll

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
	"sige/internal/tenant"
)

var ErrAlreadyProcessed = apperror.New(
	apperror.CodeConflict,
	"payroll already processed for this employee and month",
	http.StatusConflict,
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, f *FolhaPagamento) error
	ListByCompetencia(ctx context.Context, adminID int64, competencia string) ([]FolhaPagamento, error)
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

func (r *repository) Create(ctx context.Context, f *FolhaPagamento) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), f.AdminID)
	if err != nil {
		return err
	}
	if err := scoped.Create(f).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyProcessed
		}
		return err
	}
	return nil
}

func (r *repository) ListByCompetencia(ctx context.Context, adminID int64, competencia string) ([]FolhaPagamento, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var out []FolhaPagamento
	if err := scoped.Where("competencia = ?", competencia).Order("funcionario_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
