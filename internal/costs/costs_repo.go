package costs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sige/internal/tenant"
)

// Repository aggregates the employee-facing cost tables for the KPI
// engine. Sums come back as float64 because KPIs are analytics, not
// ledger facts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	SumAlimentacao(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error)
	SumTransporte(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error)
	SumOutrosCustos(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error)
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

func (r *repository) SumAlimentacao(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return 0, err
	}

	var total *float64
	err = scoped.Model(&RegistroAlimentacao{}).
		Select("SUM(valor)").
		Where("funcionario_id = ? AND data BETWEEN ? AND ?", funcionarioID, start, end).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return deref(total), nil
}

// SumTransporte covers vale-transporte rows in outro_custo plus vehicle
// expenses tied to the employee.
func (r *repository) SumTransporte(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return 0, err
	}

	var outros *float64
	err = scoped.Model(&OutroCusto{}).
		Select("SUM(valor)").
		Where("funcionario_id = ? AND data BETWEEN ? AND ?", funcionarioID, start, end).
		Where("tipo ILIKE '%transporte%' OR categoria ILIKE '%transporte%'").
		Scan(&outros).Error
	if err != nil {
		return 0, err
	}

	scoped, err = tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return 0, err
	}

	var veiculos *float64
	err = scoped.Model(&VeiculoDespesa{}).
		Select("SUM(valor)").
		Where("funcionario_id = ? AND data BETWEEN ? AND ?", funcionarioID, start, end).
		Scan(&veiculos).Error
	if err != nil {
		return 0, err
	}

	return deref(outros) + deref(veiculos), nil
}

func (r *repository) SumOutrosCustos(ctx context.Context, adminID, funcionarioID int64, start, end time.Time) (float64, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return 0, err
	}

	var total *float64
	err = scoped.Model(&OutroCusto{}).
		Select("SUM(valor)").
		Where("funcionario_id = ? AND data BETWEEN ? AND ?", funcionarioID, start, end).
		Where("tipo NOT ILIKE '%transporte%' AND (categoria IS NULL OR categoria NOT ILIKE '%transporte%')").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return deref(total), nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
