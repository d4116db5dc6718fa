package punch

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sige/internal/tenant"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rec *RegistroPonto) error
	Update(ctx context.Context, rec *RegistroPonto) error
	FindByID(ctx context.Context, adminID, id int64) (*RegistroPonto, error)
	ListByEmployeePeriod(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) ([]RegistroPonto, error)
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

func (r *repository) Create(ctx context.Context, rec *RegistroPonto) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), rec.AdminID)
	if err != nil {
		return err
	}
	return mapError(scoped.Create(rec).Error)
}

func (r *repository) Update(ctx context.Context, rec *RegistroPonto) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), rec.AdminID)
	if err != nil {
		return err
	}

	res := scoped.Where("id = ?", rec.ID).Save(rec)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, adminID, id int64) (*RegistroPonto, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var rec RegistroPonto
	if err := scoped.Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, mapError(err)
	}
	return &rec, nil
}

func (r *repository) ListByEmployeePeriod(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) ([]RegistroPonto, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var out []RegistroPonto
	err = scoped.
		Where("funcionario_id = ? AND data BETWEEN ? AND ?", funcionarioID, start, end).
		Order("data").
		Find(&out).Error
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}
