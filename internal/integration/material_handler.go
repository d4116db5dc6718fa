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
	"sige/internal/material"
	"sige/internal/worksite"
)

// MaterialHandler turns stock movements into costs and ledger entries.
// SAIDA consumes stock against the worksite (cost row + materials cost
// entry); ENTRADA is a purchase into stock paid from the bank.
type MaterialHandler struct {
	entries   accounting.Repository
	worksites worksite.Repository
	logger    *zap.Logger
}

func NewMaterialHandler(entries accounting.Repository, worksites worksite.Repository, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		entries:   entries,
		worksites: worksites,
		logger:    logger.Named("integration.material"),
	}
}

func (h *MaterialHandler) Handle(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	payload, ok := e.Payload.(events.MaterialMovedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Name)
	}

	return postMaterial(ctx, h.entries.WithTx(tx), h.worksites.WithTx(tx), e.TenantID, payload, time.Now().UTC())
}

func postMaterial(
	ctx context.Context,
	entries accounting.Repository,
	worksites worksite.Repository,
	adminID int64,
	p events.MaterialMovedPayload,
	when time.Time,
) error {
	entry := &accounting.LancamentoContabil{
		Data:       when,
		ValorTotal: p.ValorTotal,
		Origem:     accounting.OrigemMaterial,
		OrigemID:   p.MovimentoID,
		AdminID:    adminID,
	}

	switch p.Tipo {
	case material.TipoSaida:
		descricao := fmt.Sprintf("Consumo de material: %s", p.Item)
		if err := worksites.CreateCost(ctx, &worksite.CustoObra{
			ObraID:    p.ObraID,
			Data:      when,
			Tipo:      worksite.CustoMaterial,
			Descricao: &descricao,
			Valor:     p.ValorTotal,
			AdminID:   adminID,
		}); err != nil {
			return err
		}

		entry.Historico = descricao
		entry.Partidas = []accounting.PartidaContabil{
			{ContaCodigo: accounting.ContaCustoMateriais, Tipo: accounting.LadoDebito, Valor: p.ValorTotal},
			{ContaCodigo: accounting.ContaEstoque, Tipo: accounting.LadoCredito, Valor: p.ValorTotal},
		}

	case material.TipoEntrada:
		entry.Historico = fmt.Sprintf("Compra de material: %s", p.Item)
		entry.Partidas = []accounting.PartidaContabil{
			{ContaCodigo: accounting.ContaEstoque, Tipo: accounting.LadoDebito, Valor: p.ValorTotal},
			{ContaCodigo: accounting.ContaBancos, Tipo: accounting.LadoCredito, Valor: p.ValorTotal},
		}

	default:
		return fmt.Errorf("unknown movement kind %q", p.Tipo)
	}

	return entries.CreateBalanced(ctx, entry)
}
