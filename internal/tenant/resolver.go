package tenant

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/shared/apperror"
)

// Resolver decides which admin_id a request operates under.
// It fails closed: when no rule matches, callers get ErrTenantMissing
// and must not fall back to an unscoped query.
type Resolver struct {
	db              *gorm.DB
	allowAutodetect bool
	logger          *zap.Logger
}

func NewResolver(db *gorm.DB, allowAutodetect bool, logger *zap.Logger) *Resolver {
	return &Resolver{
		db:              db,
		allowAutodetect: allowAutodetect,
		logger:          logger.Named("tenant.resolver"),
	}
}

// Resolve applies the rules in priority order:
//  1. authenticated admin -> its own user id
//  2. authenticated employee -> the admin that owns it
//  3. ALLOW_TENANT_AUTODETECT=true -> first admin account (dev only)
//  4. otherwise ErrTenantMissing
func (r *Resolver) Resolve(ctx context.Context, p *Principal) (int64, error) {
	if p != nil && p.Authenticated {
		switch p.Role {
		case RoleAdmin:
			if p.UserID > 0 {
				return p.UserID, nil
			}
		case RoleEmployee:
			if p.AdminID > 0 {
				return p.AdminID, nil
			}
		}
	}

	if r.allowAutodetect && r.db != nil {
		var adminID int64
		err := r.db.WithContext(ctx).
			Raw(`SELECT id FROM usuario WHERE tipo_usuario = 'admin' ORDER BY id LIMIT 1`).
			Scan(&adminID).Error
		if err == nil && adminID > 0 {
			r.logger.Warn("tenant autodetect fallback used, do not enable in production",
				zap.Int64("admin_id", adminID))
			return adminID, nil
		}
		if err != nil {
			r.logger.Error("tenant autodetect query failed", zap.Error(err))
		}
	}

	return 0, apperror.ErrTenantMissing
}
