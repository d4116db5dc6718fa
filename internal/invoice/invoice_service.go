package invoice

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/eventbus"
	"sige/internal/events"
)

type Service interface {
	Pay(ctx context.Context, adminID, id int64, when time.Time) (*NotaFiscal, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, bus *eventbus.Bus, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, bus: bus, logger: logger.Named("invoice.service")}
}

// Pay flips the invoice to PAGA and emits nota_fiscal_paga in the same
// transaction, so the accounting handler posts atomically with the flip.
func (s *service) Pay(ctx context.Context, adminID, id int64, when time.Time) (*NotaFiscal, error) {
	nota, err := s.repo.FindByID(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).MarkPaid(ctx, adminID, id, when); err != nil {
			return err
		}

		s.bus.Emit(ctx, tx, events.InvoicePaid, events.InvoicePaidPayload{
			NotaFiscalID:  nota.ID,
			Fornecedor:    nota.Fornecedor,
			Categoria:     nota.Categoria,
			ValorTotal:    nota.ValorTotal,
			DataPagamento: when,
		}, adminID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	nota.Status = StatusPaga
	nota.DataPagamento = &when

	s.logger.Info("invoice paid",
		zap.Int64("nota_fiscal_id", nota.ID),
		zap.String("categoria", nota.Categoria),
	)
	return nota, nil
}
