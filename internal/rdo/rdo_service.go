package rdo

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/saga"
	"sige/internal/shared/apperror"
	"sige/internal/worksite"
)

var ErrCreationRolledBack = apperror.New(
	apperror.CodeStepFailed,
	"RDO creation failed and was rolled back",
	http.StatusUnprocessableEntity,
)

type ServicoInput struct {
	Descricao  string
	Quantidade decimal.Decimal
}

type CreateInput struct {
	Numero        string
	ObraID        int64
	DataRelatorio time.Time
	Servicos      []ServicoInput
}

type Service interface {
	CreateRDO(ctx context.Context, adminID int64, in CreateInput) (*RDO, saga.StatusReport, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	worksites worksite.Repository
	store     saga.Store
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, worksites worksite.Repository, store saga.Store, logger *zap.Logger) Service {
	return &service{
		db:        db,
		repo:      repo,
		worksites: worksites,
		store:     store,
		logger:    logger.Named("rdo"),
	}
}

// CreateRDO runs the rdo_creation saga: create the report, attach its
// services, snapshot the worksite cost total, finalize. Each step
// commits on its own; a failure compensates the earlier steps.
func (s *service) CreateRDO(ctx context.Context, adminID int64, in CreateInput) (*RDO, saga.StatusReport, error) {
	sg := saga.New(s.db, s.store, s.logger, "rdo_creation", adminID, map[string]any{
		"obra_id": in.ObraID,
	})

	sg.AddStep("criar_rdo",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			if _, err := s.worksites.WithTx(tx).FindObra(ctx, adminID, in.ObraID); err != nil {
				return nil, err
			}
			rec := &RDO{
				Numero:        in.Numero,
				ObraID:        in.ObraID,
				DataRelatorio: in.DataRelatorio,
				Status:        StatusRascunho,
				CustoTotal:    decimal.Zero,
				AdminID:       adminID,
			}
			if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
				return nil, err
			}
			data["rdo_id"] = rec.ID
			return rec.ID, nil
		},
		func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error {
			id, ok := result.(int64)
			if !ok {
				return nil
			}
			return s.repo.WithTx(tx).Delete(ctx, adminID, id)
		},
	)

	sg.AddStep("adicionar_servicos",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			rdoID := data["rdo_id"].(int64)
			for _, sv := range in.Servicos {
				rec := &RDOServico{
					RDOID:      rdoID,
					Descricao:  sv.Descricao,
					Quantidade: sv.Quantidade,
					AdminID:    adminID,
				}
				if err := s.repo.WithTx(tx).CreateServico(ctx, rec); err != nil {
					return nil, err
				}
			}
			return len(in.Servicos), nil
		},
		func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error {
			rdoID, ok := data["rdo_id"].(int64)
			if !ok {
				return nil
			}
			return s.repo.WithTx(tx).DeleteServicosByRDO(ctx, adminID, rdoID)
		},
	)

	sg.AddStep("calcular_custos",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			rdoID := data["rdo_id"].(int64)
			total, err := s.worksites.WithTx(tx).SumCosts(ctx, adminID, in.ObraID)
			if err != nil {
				return nil, err
			}
			if err := s.repo.WithTx(tx).UpdateCustoTotal(ctx, adminID, rdoID, total); err != nil {
				return nil, err
			}
			data["custo_total"] = total
			return total, nil
		},
		func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error {
			rdoID, ok := data["rdo_id"].(int64)
			if !ok {
				return nil
			}
			return s.repo.WithTx(tx).UpdateCustoTotal(ctx, adminID, rdoID, decimal.Zero)
		},
	)

	sg.AddStep("atualizar_status",
		func(ctx context.Context, tx *gorm.DB, data map[string]any) (any, error) {
			rdoID := data["rdo_id"].(int64)
			return nil, s.repo.WithTx(tx).UpdateStatus(ctx, adminID, rdoID, StatusFinalizado)
		},
		func(ctx context.Context, tx *gorm.DB, data map[string]any, result any) error {
			rdoID, ok := data["rdo_id"].(int64)
			if !ok {
				return nil
			}
			return s.repo.WithTx(tx).UpdateStatus(ctx, adminID, rdoID, StatusRascunho)
		},
	)

	if !sg.Execute(ctx) {
		return nil, sg.Status(), ErrCreationRolledBack
	}

	rdoID := sg.Data()["rdo_id"].(int64)
	rec, err := s.repo.FindByID(ctx, adminID, rdoID)
	if err != nil {
		return nil, sg.Status(), err
	}
	return rec, sg.Status(), nil
}
