package material

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/worksite"
)

type Service interface {
	RecordMovement(ctx context.Context, adminID int64, in MovementInput) (*MovimentoMaterial, error)
}

type MovementInput struct {
	ObraID        int64
	Item          string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	Tipo          string
	Data          time.Time
}

type service struct {
	db        *gorm.DB
	repo      Repository
	worksites worksite.Repository
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, worksites worksite.Repository, bus *eventbus.Bus, logger *zap.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		worksites: worksites,
		bus:       bus,
		logger:    logger.Named("material.service"),
	}
}

func (s *service) RecordMovement(ctx context.Context, adminID int64, in MovementInput) (*MovimentoMaterial, error) {
	if in.Tipo != TipoEntrada && in.Tipo != TipoSaida {
		return nil, ErrUnknownTipo
	}

	if _, err := s.worksites.FindObra(ctx, adminID, in.ObraID); err != nil {
		return nil, err
	}

	mov := &MovimentoMaterial{
		ObraID:        in.ObraID,
		Item:          in.Item,
		Quantidade:    in.Quantidade,
		ValorUnitario: in.ValorUnitario,
		ValorTotal:    in.Quantidade.Mul(in.ValorUnitario).Round(2),
		Tipo:          in.Tipo,
		Data:          in.Data,
		AdminID:       adminID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, mov); err != nil {
			return err
		}

		s.bus.Emit(ctx, tx, events.MaterialMoved, events.MaterialMovedPayload{
			MovimentoID: mov.ID,
			ObraID:      mov.ObraID,
			Item:        mov.Item,
			Tipo:        mov.Tipo,
			ValorTotal:  mov.ValorTotal,
		}, adminID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("material movement recorded",
		zap.Int64("movimento_id", mov.ID),
		zap.Int64("obra_id", mov.ObraID),
		zap.String("tipo", mov.Tipo),
	)
	return mov, nil
}
