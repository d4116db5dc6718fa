package integration

import (
	"go.uber.org/zap"

	"sige/internal/accounting"
	"sige/internal/employee"
	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/invoice"
	"sige/internal/proposal"
	"sige/internal/punch"
	"sige/internal/receivable"
	"sige/internal/worksite"
)

// Register binds every integration handler to the bus at startup.
// Registration order is execution order within one event.
func Register(
	bus *eventbus.Bus,
	entries accounting.Repository,
	receivables receivable.Repository,
	worksites worksite.Repository,
	invoices invoice.Repository,
	proposals proposal.Repository,
	employees employee.Repository,
	punches punch.Service,
	logger *zap.Logger,
) {
	bus.Register(events.PayrollProcessed, "contabilidade_folha",
		NewFolhaHandler(entries, employees, worksites, logger).Handle)

	bus.Register(events.ProposalApproved, "contabilidade_proposta",
		NewPropostaHandler(entries, receivables, logger).Handle)

	bus.Register(events.InvoicePaid, "contabilidade_nota",
		NewNotaHandler(entries, logger).Handle)

	bus.Register(events.MaterialMoved, "contabilidade_material",
		NewMaterialHandler(entries, worksites, logger).Handle)

	bus.Register(events.PunchRegistered, "recalculo_ponto",
		NewPontoHandler(punches, logger).Handle)

	bus.Register(events.MonthClosing, "fechamento_mensal",
		NewFechamentoHandler(entries, receivables, invoices, proposals, logger).Handle)
}
