package integration

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/accounting"
	"sige/internal/eventbus"
	"sige/internal/events"
)

// NotaHandler posts a paid supplier invoice: category expense debited,
// bank credited.
type NotaHandler struct {
	entries accounting.Repository
	logger  *zap.Logger
}

func NewNotaHandler(entries accounting.Repository, logger *zap.Logger) *NotaHandler {
	return &NotaHandler{entries: entries, logger: logger.Named("integration.nota")}
}

func (h *NotaHandler) Handle(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	payload, ok := e.Payload.(events.InvoicePaidPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Name)
	}

	return postNota(ctx, h.entries.WithTx(tx), e.TenantID, payload)
}

func postNota(ctx context.Context, entries accounting.Repository, adminID int64, p events.InvoicePaidPayload) error {
	entry := &accounting.LancamentoContabil{
		Data:       p.DataPagamento,
		Historico:  fmt.Sprintf("Pagamento NF %d - %s", p.NotaFiscalID, p.Fornecedor),
		ValorTotal: p.ValorTotal,
		Origem:     accounting.OrigemNotaPaga,
		OrigemID:   p.NotaFiscalID,
		AdminID:    adminID,
		Partidas: []accounting.PartidaContabil{
			{ContaCodigo: accounting.ExpenseAccountFor(p.Categoria), Tipo: accounting.LadoDebito, Valor: p.ValorTotal},
			{ContaCodigo: accounting.ContaBancos, Tipo: accounting.LadoCredito, Valor: p.ValorTotal},
		},
	}

	return entries.CreateBalanced(ctx, entry)
}
