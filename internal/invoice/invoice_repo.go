package invoice

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
		"Nota fiscal not found",
		http.StatusNotFound,
	)

	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"Nota fiscal is already paid",
		http.StatusConflict,
	)
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, n *NotaFiscal) error
	FindByID(ctx context.Context, adminID, id int64) (*NotaFiscal, error)
	MarkPaid(ctx context.Context, adminID, id int64, when time.Time) error
	ListPaidInMonth(ctx context.Context, adminID int64, monthStart, monthEnd time.Time) ([]NotaFiscal, error)
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

func (r *repository) Create(ctx context.Context, n *NotaFiscal) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), n.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(n).Error
}

func (r *repository) FindByID(ctx context.Context, adminID, id int64) (*NotaFiscal, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var n NotaFiscal
	if err := scoped.Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *repository) MarkPaid(ctx context.Context, adminID, id int64, when time.Time) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}

	res := scoped.Model(&NotaFiscal{}).
		Where("id = ? AND status = ?", id, StatusPendente).
		Updates(map[string]any{"status": StatusPaga, "data_pagamento": when})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyPaid
	}
	return nil
}

func (r *repository) ListPaidInMonth(ctx context.Context, adminID int64, monthStart, monthEnd time.Time) ([]NotaFiscal, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var out []NotaFiscal
	err = scoped.
		Where("status = ? AND data_pagamento BETWEEN ? AND ?", StatusPaga, monthStart, monthEnd).
		Order("data_pagamento").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
