package integration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/accounting"
	"sige/internal/employee"
	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/worksite"
)

// FolhaHandler posts the salary entry when a payroll row is processed:
// gross salary debited to expense, split on the credit side between the
// net payable and the withheld INSS/IRRF. When the employee is assigned
// to a worksite, gross plus employer charges also lands there as a
// labor cost row.
type FolhaHandler struct {
	entries   accounting.Repository
	employees employee.Repository
	worksites worksite.Repository
	logger    *zap.Logger
}

func NewFolhaHandler(
	entries accounting.Repository,
	employees employee.Repository,
	worksites worksite.Repository,
	logger *zap.Logger,
) *FolhaHandler {
	return &FolhaHandler{
		entries:   entries,
		employees: employees,
		worksites: worksites,
		logger:    logger.Named("integration.folha"),
	}
}

func (h *FolhaHandler) Handle(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	payload, ok := e.Payload.(events.PayrollProcessedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Name)
	}

	return postFolha(ctx, h.entries.WithTx(tx), h.employees.WithTx(tx), h.worksites.WithTx(tx),
		e.TenantID, payload, time.Now().UTC())
}

func postFolha(
	ctx context.Context,
	entries accounting.Repository,
	employees employee.Repository,
	worksites worksite.Repository,
	adminID int64,
	p events.PayrollProcessedPayload,
	when time.Time,
) error {
	liquido := p.SalarioBruto.Sub(p.INSS).Sub(p.IRRF)

	partidas := []accounting.PartidaContabil{
		{ContaCodigo: accounting.ContaDespesaSalarios, Tipo: accounting.LadoDebito, Valor: p.SalarioBruto},
		{ContaCodigo: accounting.ContaSalariosAPagar, Tipo: accounting.LadoCredito, Valor: liquido},
	}
	if p.INSS.IsPositive() {
		partidas = append(partidas, accounting.PartidaContabil{
			ContaCodigo: accounting.ContaINSSARecolher, Tipo: accounting.LadoCredito, Valor: p.INSS,
		})
	}
	if p.IRRF.IsPositive() {
		partidas = append(partidas, accounting.PartidaContabil{
			ContaCodigo: accounting.ContaIRRFARecolher, Tipo: accounting.LadoCredito, Valor: p.IRRF,
		})
	}

	entry := &accounting.LancamentoContabil{
		Data:       when,
		Historico:  fmt.Sprintf("Folha %s funcionario %d", p.Competencia, p.FuncionarioID),
		ValorTotal: p.SalarioBruto,
		Origem:     accounting.OrigemFolha,
		OrigemID:   p.FolhaID,
		AdminID:    adminID,
		Partidas:   partidas,
	}

	if err := entries.CreateBalanced(ctx, entry); err != nil {
		return err
	}

	emp, err := employees.FindByID(ctx, adminID, p.FuncionarioID)
	if err != nil {
		return err
	}
	if emp.ObraID == nil {
		return nil
	}

	descricao := fmt.Sprintf("Folha %s - %s", p.Competencia, emp.Nome)
	return worksites.CreateCost(ctx, &worksite.CustoObra{
		ObraID:        *emp.ObraID,
		Data:          when,
		Tipo:          worksite.CustoMaoObra,
		Descricao:     &descricao,
		Valor:         p.SalarioBruto.Add(p.Encargos),
		FuncionarioID: &p.FuncionarioID,
		AdminID:       adminID,
	})
}
