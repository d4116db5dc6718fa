package schedule

import (
	"context"

	"gorm.io/gorm"

	"sige/internal/tenant"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, h *HorarioTrabalho) error
	ListForEmployee(ctx context.Context, adminID, funcionarioID int64) ([]HorarioTrabalho, error)
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

func (r *repository) Create(ctx context.Context, h *HorarioTrabalho) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), h.AdminID)
	if err != nil {
		return err
	}
	return scoped.Create(h).Error
}

// ListForEmployee returns every window that can apply to the employee:
// its personal schedules plus the shared one linked on funcionario.
func (r *repository) ListForEmployee(ctx context.Context, adminID, funcionarioID int64) ([]HorarioTrabalho, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var windows []HorarioTrabalho
	err = scoped.
		Where(`funcionario_id = ? OR id IN (
			SELECT horario_trabalho_id FROM funcionario
			WHERE id = ? AND admin_id = ? AND horario_trabalho_id IS NOT NULL
		)`, funcionarioID, funcionarioID, adminID).
		Order("valido_de").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}
