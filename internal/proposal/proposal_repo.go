package proposal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"sige/internal/shared/apperror"
	"sige/internal/tenant"
)

var (
	ErrNotFound = apperror.New(
		apperror.CodeNotFound,
		"Proposta not found",
		http.StatusNotFound,
	)

	ErrNotApprovable = apperror.New(
		apperror.CodeInvalidState,
		"Proposta cannot be approved in its current status",
		http.StatusConflict,
	)
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *PropostaComercial) error
	FindByID(ctx context.Context, adminID, id int64) (*PropostaComercial, error)
	MarkApproved(ctx context.Context, adminID, id int64, when time.Time) error
	ListApprovedInMonth(ctx context.Context, adminID int64, monthStart, monthEnd time.Time) ([]PropostaComercial, error)
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

func (r *repository) Create(ctx context.Context, p *PropostaComercial) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), p.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, adminID, id int64) (*PropostaComercial, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var p PropostaComercial
	if err := scoped.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) MarkApproved(ctx context.Context, adminID, id int64, when time.Time) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}

	res := scoped.Model(&PropostaComercial{}).
		Where("id = ? AND status IN ?", id, []string{StatusRascunho, StatusEnviada}).
		Updates(map[string]any{"status": StatusAprovada, "data_aprovacao": when})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotApprovable
	}
	return nil
}

func (r *repository) ListApprovedInMonth(ctx context.Context, adminID int64, monthStart, monthEnd time.Time) ([]PropostaComercial, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var out []PropostaComercial
	err = scoped.
		Where("status = ? AND data_aprovacao BETWEEN ? AND ?", StatusAprovada, monthStart, monthEnd).
		Order("data_aprovacao").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
