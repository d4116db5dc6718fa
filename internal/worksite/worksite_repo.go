package worksite

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
	"sige/internal/tenant"
)

var ErrNotFound = apperror.New(
	apperror.CodeNotFound,
	"Obra not found",
	http.StatusNotFound,
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindObra(ctx context.Context, adminID, id int64) (*Obra, error)
	CreateCost(ctx context.Context, c *CustoObra) error
	SumCosts(ctx context.Context, adminID, obraID int64) (decimal.Decimal, error)
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

func (r *repository) FindObra(ctx context.Context, adminID, id int64) (*Obra, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var obra Obra
	if err := scoped.Where("id = ?", id).First(&obra).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &obra, nil
}

func (r *repository) CreateCost(ctx context.Context, c *CustoObra) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), c.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(c).Error
}

func (r *repository) SumCosts(ctx context.Context, adminID, obraID int64) (decimal.Decimal, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return decimal.Zero, err
	}

	var total decimal.NullDecimal
	err = scoped.Model(&CustoObra{}).
		Select("SUM(valor)").
		Where("obra_id = ?", obraID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
