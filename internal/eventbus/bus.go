package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Event is what handlers receive. Payload is one of the structs in
// internal/events; handlers type-assert the one they registered for.
type Event struct {
	Name     string
	TenantID int64
	Payload  any
}

// Handler runs synchronously inside the emitter's transaction. Returning
// an error (or panicking) never aborts the emitter or the other handlers.
type Handler func(ctx context.Context, tx *gorm.DB, e Event) error

type registration struct {
	name string
	fn   Handler
}

// OutboxAppender persists a copy of the event in the same transaction so
// a separate process can mirror it to the broker.
type OutboxAppender interface {
	Append(ctx context.Context, tx *gorm.DB, e Event) error
}

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]registration
	outbox   OutboxAppender
	logger   *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]registration),
		logger:   logger.Named("eventbus"),
	}
}

func (b *Bus) SetOutbox(a OutboxAppender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outbox = a
}

// Register binds fn to an event name. handlerName shows up in logs when
// the handler fails. Registration order is execution order.
func (b *Bus) Register(event, handlerName string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], registration{name: handlerName, fn: fn})
}

// Emit runs every handler for the event inside tx, in registration order,
// and returns how many succeeded. A failing or panicking handler is logged
// and skipped; the emitter's transaction is never poisoned by the bus
// itself (handlers that write through tx can of course still fail it).
func (b *Bus) Emit(ctx context.Context, tx *gorm.DB, event string, payload any, tenantID int64) int {
	b.mu.RLock()
	regs := b.handlers[event]
	outbox := b.outbox
	b.mu.RUnlock()

	e := Event{Name: event, TenantID: tenantID, Payload: payload}

	succeeded := 0
	for _, reg := range regs {
		if err := b.runHandler(ctx, tx, reg, e); err != nil {
			b.logger.Error("event handler failed",
				zap.String("event", event),
				zap.String("handler", reg.name),
				zap.Int64("tenant_id", tenantID),
				zap.Error(err),
			)
			continue
		}
		succeeded++
	}

	if outbox != nil {
		if err := outbox.Append(ctx, tx, e); err != nil {
			b.logger.Error("outbox append failed",
				zap.String("event", event),
				zap.Int64("tenant_id", tenantID),
				zap.Error(err),
			)
		}
	}

	b.logger.Debug("event emitted",
		zap.String("event", event),
		zap.Int64("tenant_id", tenantID),
		zap.Int("handlers_ok", succeeded),
		zap.Int("handlers_total", len(regs)),
	)

	return succeeded
}

func (b *Bus) runHandler(ctx context.Context, tx *gorm.DB, reg registration, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return reg.fn(ctx, tx, e)
}

type panicError struct{ value any }

func (p *panicError) Error() string { return "handler panicked" }
