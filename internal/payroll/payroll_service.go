package payroll

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/employee"
	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/kpi"
	"sige/internal/shared/apperror"
)

var ErrInvalidCompetencia = apperror.New(
	apperror.CodeInvalidInput,
	"competencia must be YYYY-MM",
	http.StatusBadRequest,
)

// BundleComputer is the slice of the KPI engine payroll needs.
type BundleComputer interface {
	Compute(ctx context.Context, adminID, funcionarioID int64, inicio, fim time.Time, holidays kpi.Holidays) (*kpi.Bundle, error)
}

type Service interface {
	ProcessMonth(ctx context.Context, adminID int64, competencia string) ([]FolhaPagamento, error)
	CloseMonth(ctx context.Context, adminID int64, competencia string) (int, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	engine    BundleComputer
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	engine BundleComputer,
	bus *eventbus.Bus,
	logger *zap.Logger,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		engine:    engine,
		bus:       bus,
		logger:    logger.Named("payroll"),
	}
}

// MontarFolha turns an employee's KPI bundle into a payroll row. Gross is
// the base salary plus 50%-uplifted overtime minus unjustified absences;
// deductions follow the statutory tables.
func MontarFolha(emp *employee.Funcionario, b *kpi.Bundle, competencia string) FolhaPagamento {
	valorHora := decimal.NewFromFloat(b.ValorHora)
	horasDiarias := decimal.NewFromInt(8)
	if b.DiasProgramados > 0 {
		horasDiarias = decimal.NewFromFloat(b.HorasEsperadas).
			Div(decimal.NewFromInt(int64(b.DiasProgramados)))
	}

	bruto := decimal.NewFromFloat(emp.Salario).
		Add(valorHora.Mul(decimal.NewFromFloat(1.5)).Mul(decimal.NewFromFloat(b.HorasExtras))).
		Sub(valorHora.Mul(horasDiarias).Mul(decimal.NewFromInt(int64(b.Faltas)))).
		Round(2)
	if bruto.IsNegative() {
		bruto = decimal.Zero
	}

	inss := CalcularINSS(bruto)
	irrf := CalcularIRRF(bruto, inss, 0)

	return FolhaPagamento{
		FuncionarioID:  emp.ID,
		Competencia:    competencia,
		SalarioBruto:   bruto,
		INSS:           inss,
		IRRF:           irrf,
		Encargos:       CalcularEncargos(bruto),
		SalarioLiquido: bruto.Sub(inss).Sub(irrf),
		Status:         StatusProcessada,
		AdminID:        emp.AdminID,
	}
}

func (s *service) ProcessMonth(ctx context.Context, adminID int64, competencia string) ([]FolhaPagamento, error) {
	inicio, err := time.Parse("2006-01", competencia)
	if err != nil {
		return nil, ErrInvalidCompetencia
	}
	fim := inicio.AddDate(0, 1, -1)
	holidays := kpi.FixedNationalHolidays(inicio.Year())

	ativos, err := s.employees.ListActive(ctx, adminID)
	if err != nil {
		return nil, err
	}

	folhas := make([]FolhaPagamento, 0, len(ativos))
	for i := range ativos {
		emp := &ativos[i]
		bundle, err := s.engine.Compute(ctx, adminID, emp.ID, inicio, fim, holidays)
		if err != nil {
			return nil, err
		}
		folhas = append(folhas, MontarFolha(emp, bundle, competencia))
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range folhas {
			f := &folhas[i]
			if err := s.repo.WithTx(tx).Create(ctx, f); err != nil {
				return err
			}
			s.bus.Emit(ctx, tx, events.PayrollProcessed, events.PayrollProcessedPayload{
				FolhaID:       f.ID,
				FuncionarioID: f.FuncionarioID,
				Competencia:   f.Competencia,
				SalarioBruto:  f.SalarioBruto,
				INSS:          f.INSS,
				IRRF:          f.IRRF,
				Encargos:      f.Encargos,
			}, adminID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payroll processed",
		zap.String("competencia", competencia),
		zap.Int64("admin_id", adminID),
		zap.Int("funcionarios", len(folhas)),
	)
	return folhas, nil
}

// CloseMonth emits fechamento_mensal so the accounting handlers re-post
// anything the month is still missing. Returns the handler success count.
func (s *service) CloseMonth(ctx context.Context, adminID int64, competencia string) (int, error) {
	if _, err := time.Parse("2006-01", competencia); err != nil {
		return 0, ErrInvalidCompetencia
	}

	var handled int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		handled = s.bus.Emit(ctx, tx, events.MonthClosing, events.MonthClosingPayload{
			Competencia: competencia,
		}, adminID)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("month closing emitted",
		zap.String("competencia", competencia),
		zap.Int64("admin_id", adminID),
		zap.Int("handlers", handled),
	)
	return handled, nil
}
