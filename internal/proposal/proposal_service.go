package proposal

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/eventbus"
	"sige/internal/events"
)

type Service interface {
	Approve(ctx context.Context, adminID, id int64, when time.Time) (*PropostaComercial, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, bus *eventbus.Bus, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, bus: bus, logger: logger.Named("proposal.service")}
}

func (s *service) Approve(ctx context.Context, adminID, id int64, when time.Time) (*PropostaComercial, error) {
	prop, err := s.repo.FindByID(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).MarkApproved(ctx, adminID, id, when); err != nil {
			return err
		}

		s.bus.Emit(ctx, tx, events.ProposalApproved, events.ProposalApprovedPayload{
			PropostaID:    prop.ID,
			Cliente:       prop.Cliente,
			ValorTotal:    prop.ValorTotal,
			DataAprovacao: when,
			ObraID:        prop.ObraID,
		}, adminID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	prop.Status = StatusAprovada
	prop.DataAprovacao = &when

	s.logger.Info("proposal approved",
		zap.Int64("proposta_id", prop.ID),
		zap.String("cliente", prop.Cliente),
	)
	return prop, nil
}
