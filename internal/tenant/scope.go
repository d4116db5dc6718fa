package tenant

import (
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
)

func Scope(adminID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("admin_id = ?", adminID)
	}
}

// Scoped is the guard variant: it refuses to produce an unscoped query
// when the tenant id was never resolved.
func Scoped(db *gorm.DB, adminID int64) (*gorm.DB, error) {
	if adminID <= 0 {
		return nil, apperror.ErrTenantMissing
	}
	return db.Scopes(Scope(adminID)), nil
}
