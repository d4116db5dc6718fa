package employee

import (
	"context"

	"gorm.io/gorm"

	"sige/internal/tenant"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, f *Funcionario) error
	FindByID(ctx context.Context, adminID, id int64) (*Funcionario, error)
	ListActive(ctx context.Context, adminID int64) ([]Funcionario, error)
	UpdateSalary(ctx context.Context, adminID, id int64, salario float64) error
	CreateSalaryAudit(ctx context.Context, a *AuditoriaSalario) error
	DeleteSalaryAudit(ctx context.Context, adminID, auditID int64) error
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

func (r *repository) Create(ctx context.Context, f *Funcionario) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), f.AdminID)
	if err != nil {
		return err
	}
	return mapError(scoped.Create(f).Error)
}

func (r *repository) FindByID(ctx context.Context, adminID, id int64) (*Funcionario, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var f Funcionario
	if err := scoped.Where("id = ?", id).First(&f).Error; err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *repository) ListActive(ctx context.Context, adminID int64) ([]Funcionario, error) {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return nil, err
	}

	var out []Funcionario
	if err := scoped.Where("ativo = TRUE").Order("nome").Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *repository) UpdateSalary(ctx context.Context, adminID, id int64, salario float64) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}

	res := scoped.Model(&Funcionario{}).Where("id = ?", id).Update("salario", salario)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreateSalaryAudit(ctx context.Context, a *AuditoriaSalario) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), a.AdminID)
	if err != nil {
		return err
	}
	return mapError(scoped.Create(a).Error)
}

func (r *repository) DeleteSalaryAudit(ctx context.Context, adminID, auditID int64) error {
	scoped, err := tenant.Scoped(r.db.WithContext(ctx), adminID)
	if err != nil {
		return err
	}
	return mapError(scoped.Where("id = ?", auditID).Delete(&AuditoriaSalario{}).Error)
}
