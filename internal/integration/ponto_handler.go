package integration

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sige/internal/eventbus"
	"sige/internal/events"
	"sige/internal/punch"
)

// PontoHandler recomputes the derived punch columns after any write, so
// records edited by paths that skip the service still converge.
type PontoHandler struct {
	punches punch.Service
	logger  *zap.Logger
}

func NewPontoHandler(punches punch.Service, logger *zap.Logger) *PontoHandler {
	return &PontoHandler{punches: punches, logger: logger.Named("integration.ponto")}
}

func (h *PontoHandler) Handle(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	payload, ok := e.Payload.(events.PunchRegisteredPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Name)
	}

	return h.punches.Rederive(ctx, tx, e.TenantID, payload.RegistroID)
}
