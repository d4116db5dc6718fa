package employee

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/saga"
	"sige/internal/shared/apperror"
)

var ErrSalaryUpdateRolledBack = apperror.New(
	apperror.CodeStepFailed,
	"salary update failed and was rolled back",
	http.StatusUnprocessableEntity,
)

type Service interface {
	UpdateSalary(ctx context.Context, adminID, funcionarioID int64, novoSalario float64, motivo string) (saga.StatusReport, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	store  saga.Store
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, store saga.Store, logger *zap.Logger) Service {
	return &service{
		db:     db,
		repo:   repo,
		store:  store,
		logger: logger.Named("employee"),
	}
}

// UpdateSalary runs the salary_update saga: snapshot the current salary,
// write the new one, append the audit row. A failed audit write restores
// the previous salary.
func (s *service) UpdateSalary(ctx context.Context, adminID, funcionarioID int64, novoSalario float64, motivo string) (saga.StatusReport, error) {
	sg := saga.New(s.db, s.store, s.logger, "salary_update", adminID, map[string]any{
		"funcionario_id": funcionarioID,
	})

	sg.AddStep("capturar_salario_atual",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			emp, err := s.repo.WithTx(tx).FindByID(ctx, adminID, funcionarioID)
			if err != nil {
				return nil, err
			}
			data["salario_anterior"] = emp.Salario
			return emp.Salario, nil
		},
		nil,
	)

	sg.AddStep("atualizar_salario",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			return nil, s.repo.WithTx(tx).UpdateSalary(ctx, adminID, funcionarioID, novoSalario)
		},
		func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error {
			anterior, ok := data["salario_anterior"].(float64)
			if !ok {
				return nil
			}
			return s.repo.WithTx(tx).UpdateSalary(ctx, adminID, funcionarioID, anterior)
		},
	)

	sg.AddStep("registrar_auditoria",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			audit := &AuditoriaSalario{
				FuncionarioID:   funcionarioID,
				SalarioAnterior: data["salario_anterior"].(float64),
				SalarioNovo:     novoSalario,
				Motivo:          motivo,
				AdminID:         adminID,
			}
			if err := s.repo.WithTx(tx).CreateSalaryAudit(ctx, audit); err != nil {
				return nil, err
			}
			return audit.ID, nil
		},
		func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error {
			auditID, ok := result.(int64)
			if !ok {
				return nil
			}
			return s.repo.WithTx(tx).DeleteSalaryAudit(ctx, adminID, auditID)
		},
	)

	if !sg.Execute(ctx) {
		return sg.Status(), ErrSalaryUpdateRolledBack
	}
	return sg.Status(), nil
}
