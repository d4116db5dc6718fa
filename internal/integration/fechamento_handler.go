package integration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/accounting"
	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/invoice"
	"sige/internal/proposal"
	"sige/internal/receivable"
)

// FechamentoHandler re-posts a whole month: any paid invoice or approved
// proposal that never reached the ledger (emitter crashed, handler
// failed) is posted now. The per-tenant (origem, origem_id) uniqueness
// makes re-running a month harmless.
type FechamentoHandler struct {
	entries     accounting.Repository
	receivables receivable.Repository
	invoices    invoice.Repository
	proposals   proposal.Repository
	logger      *zap.Logger
}

func NewFechamentoHandler(
	entries accounting.Repository,
	receivables receivable.Repository,
	invoices invoice.Repository,
	proposals proposal.Repository,
	logger *zap.Logger,
) *FechamentoHandler {
	return &FechamentoHandler{
		entries:     entries,
		receivables: receivables,
		invoices:    invoices,
		proposals:   proposals,
		logger:      logger.Named("integration.fechamento"),
	}
}

func (h *FechamentoHandler) Handle(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	payload, ok := e.Payload.(events.MonthClosingPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Name)
	}

	monthStart, err := time.Parse("2006-01", payload.Competencia)
	if err != nil {
		return fmt.Errorf("competencia must be YYYY-MM: %w", err)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	entries := h.entries.WithTx(tx)
	receivables := h.receivables.WithTx(tx)

	notas, err := h.invoices.WithTx(tx).ListPaidInMonth(ctx, e.TenantID, monthStart, monthEnd)
	if err != nil {
		return err
	}

	reposted := 0
	for _, nota := range notas {
		exists, err := entries.ExistsByOrigin(ctx, e.TenantID, accounting.OrigemNotaPaga, nota.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		err = postNota(ctx, entries, e.TenantID, events.InvoicePaidPayload{
			NotaFiscalID:  nota.ID,
			Fornecedor:    nota.Fornecedor,
			Categoria:     nota.Categoria,
			ValorTotal:    nota.ValorTotal,
			DataPagamento: *nota.DataPagamento,
		})
		if err != nil {
			return err
		}
		reposted++
	}

	propostas, err := h.proposals.WithTx(tx).ListApprovedInMonth(ctx, e.TenantID, monthStart, monthEnd)
	if err != nil {
		return err
	}

	for _, prop := range propostas {
		exists, err := entries.ExistsByOrigin(ctx, e.TenantID, accounting.OrigemProposta, prop.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		err = postProposta(ctx, entries, receivables, e.TenantID, events.ProposalApprovedPayload{
			PropostaID:    prop.ID,
			Cliente:       prop.Cliente,
			ValorTotal:    prop.ValorTotal,
			DataAprovacao: *prop.DataAprovacao,
			ObraID:        prop.ObraID,
		})
		if err != nil {
			return err
		}
		reposted++
	}

	h.logger.Info("month closing done",
		zap.String("competencia", payload.Competencia),
		zap.Int64("tenant_id", e.TenantID),
		zap.Int("reposted", reposted),
	)
	return nil
}
