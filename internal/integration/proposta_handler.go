package integration

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/accounting"
	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/receivable"
)

// PropostaHandler reacts to an approved proposal: one receivable due in
// 30 days and the revenue recognition entry.
type PropostaHandler struct {
	entries     accounting.Repository
	receivables receivable.Repository
	logger      *zap.Logger
}

func NewPropostaHandler(entries accounting.Repository, receivables receivable.Repository, logger *zap.Logger) *PropostaHandler {
	return &PropostaHandler{
		entries:     entries,
		receivables: receivables,
		logger:      logger.Named("integration.proposta"),
	}
}

func (h *PropostaHandler) Handle(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	payload, ok := e.Payload.(events.ProposalApprovedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Name)
	}

	return postProposta(ctx, h.entries.WithTx(tx), h.receivables.WithTx(tx), e.TenantID, payload)
}

// postProposta dates both the receivable and the ledger entry off the
// approval date in the payload, not off processing time.
func postProposta(
	ctx context.Context,
	entries accounting.Repository,
	receivables receivable.Repository,
	adminID int64,
	p events.ProposalApprovedPayload,
) error {
	origem := accounting.OrigemProposta

	exists, err := receivables.ExistsByOrigin(ctx, adminID, origem, p.PropostaID)
	if err != nil {
		return err
	}
	if !exists {
		descricao := fmt.Sprintf("Proposta %d aprovada", p.PropostaID)
		conta := &receivable.ContaReceber{
			Cliente:        p.Cliente,
			Descricao:      &descricao,
			Valor:          p.ValorTotal,
			DataVencimento: p.DataAprovacao.AddDate(0, 0, 30),
			Status:         receivable.StatusPendente,
			Origem:         &origem,
			OrigemID:       &p.PropostaID,
			AdminID:        adminID,
		}
		if err := receivables.Create(ctx, conta); err != nil {
			return err
		}
	}

	entry := &accounting.LancamentoContabil{
		Data:       p.DataAprovacao,
		Historico:  fmt.Sprintf("Receita proposta %d - %s", p.PropostaID, p.Cliente),
		ValorTotal: p.ValorTotal,
		Origem:     origem,
		OrigemID:   p.PropostaID,
		AdminID:    adminID,
		Partidas: []accounting.PartidaContabil{
			{ContaCodigo: accounting.ContaClientes, Tipo: accounting.LadoDebito, Valor: p.ValorTotal},
			{ContaCodigo: accounting.ContaReceitaServicos, Tipo: accounting.LadoCredito, Valor: p.ValorTotal},
		},
	}

	return entries.CreateBalanced(ctx, entry)
}
