package receivable

import (
	"context"

	"gorm.io/gorm"

	"sige/internal/tenant"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *ContaReceber) error
	ExistsByOrigin(ctx context.Context, adminID int64, origem string, origemID int64) (bool, error)
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

func (r *repository) Create(ctx context.Context, c *ContaReceber) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), c.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(c).Error
}

func (r *repository) ExistsByOrigin(ctx context.Context, adminID int64, origem string, origemID int64) (bool, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return false, err
	}

	var count int64
	err = scoped.Model(&ContaReceber{}).
		Where("origem = ? AND origem_id = ?", origem, origemID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
