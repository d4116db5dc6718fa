package punch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/schedule"
	"sige/internal/shared/contextutil"
)

type Service interface {
	Register(ctx context.Context, adminID int64, in RegisterInput) (*RegistroPonto, error)
	Update(ctx context.Context, adminID, id int64, in RegisterInput) (*RegistroPonto, error)
	Rederive(ctx context.Context, tx *gorm.DB, adminID, id int64) error
}

type RegisterInput struct {
	FuncionarioID     int64
	ObraID            *int64
	Data              time.Time
	TipoRegistro      string
	HoraEntrada       *string
	HoraSaida         *string
	HoraAlmocoSaida   *string
	HoraAlmocoRetorno *string
	Observacoes       *string
}

type service struct {
	db        *gorm.DB
	repo      Repository
	schedules schedule.Repository
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, schedules schedule.Repository, bus *eventbus.Bus, logger *zap.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		schedules: schedules,
		bus:       bus,
		logger:    logger.Named("punch.service"),
	}
}

func (s *service) Register(ctx context.Context, adminID int64, in RegisterInput) (*RegistroPonto, error) {
	if !IsKnownTipo(in.TipoRegistro) {
		return nil, ErrUnknownTipo
	}

	rec := &RegistroPonto{
		FuncionarioID:     in.FuncionarioID,
		ObraID:            in.ObraID,
		Data:              in.Data,
		TipoRegistro:      in.TipoRegistro,
		HoraEntrada:       in.HoraEntrada,
		HoraSaida:         in.HoraSaida,
		HoraAlmocoSaida:   in.HoraAlmocoSaida,
		HoraAlmocoRetorno: in.HoraAlmocoRetorno,
		Observacoes:       in.Observacoes,
		AdminID:           adminID,
	}

	if err := s.derive(ctx, rec); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
			return err
		}

		s.bus.Emit(ctx, tx, events.PunchRegistered, events.PunchRegisteredPayload{
			RegistroID:    rec.ID,
			FuncionarioID: rec.FuncionarioID,
			Data:          rec.Data,
		}, adminID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := contextutil.GetLogger(ctx, s.logger)
	log.Info("punch registered",
		zap.Int64("registro_id", rec.ID),
		zap.Int64("funcionario_id", rec.FuncionarioID),
		zap.String("tipo", rec.TipoRegistro),
	)
	return rec, nil
}

func (s *service) Update(ctx context.Context, adminID, id int64, in RegisterInput) (*RegistroPonto, error) {
	if !IsKnownTipo(in.TipoRegistro) {
		return nil, ErrUnknownTipo
	}

	rec, err := s.repo.FindByID(ctx, adminID, id)
	if err != nil {
		return nil, err
	}

	rec.ObraID = in.ObraID
	rec.TipoRegistro = in.TipoRegistro
	rec.HoraEntrada = in.HoraEntrada
	rec.HoraSaida = in.HoraSaida
	rec.HoraAlmocoSaida = in.HoraAlmocoSaida
	rec.HoraAlmocoRetorno = in.HoraAlmocoRetorno
	rec.Observacoes = in.Observacoes

	if err := s.derive(ctx, rec); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, rec); err != nil {
			return err
		}

		s.bus.Emit(ctx, tx, events.PunchRegistered, events.PunchRegisteredPayload{
			RegistroID:    rec.ID,
			FuncionarioID: rec.FuncionarioID,
			Data:          rec.Data,
		}, adminID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Rederive recomputes one record inside an existing transaction. Used by
// the ponto_registrado handler so edits made by other writers converge.
func (s *service) Rederive(ctx context.Context, tx *gorm.DB, adminID, id int64) error {
	repo := s.repo.WithTx(tx)

	rec, err := repo.FindByID(ctx, adminID, id)
	if err != nil {
		return err
	}
	if err := s.deriveWith(ctx, tx, rec); err != nil {
		return err
	}
	return repo.Update(ctx, rec)
}

func (s *service) derive(ctx context.Context, rec *RegistroPonto) error {
	return s.deriveWith(ctx, nil, rec)
}

func (s *service) deriveWith(ctx context.Context, tx *gorm.DB, rec *RegistroPonto) error {
	windows, err := s.schedules.WithTx(tx).ListForEmployee(ctx, rec.AdminID, rec.FuncionarioID)
	if err != nil {
		return err
	}

	sched := schedule.ResolveFor(windows, rec.Data)
	if sched.Fallback {
		s.logger.Warn("no schedule covers punch date, default applied",
			zap.Int64("funcionario_id", rec.FuncionarioID),
			zap.Time("data", rec.Data),
		)
	}

	return Derive(rec, sched)
}
