package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sige/internal/eventbus"
	"sige/internal/events"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

type OutboxEvent struct {
	ID        string     `gorm:"column:id;primaryKey;type:uuid"`
	EventType string     `gorm:"column:event_type;type:varchar(60)"`
	Topic     string     `gorm:"column:topic;type:varchar(120)"`
	Payload   []byte     `gorm:"column:payload;type:jsonb"`
	Status    string     `gorm:"column:status;type:varchar(20)"`
	Error     *string    `gorm:"column:error"`
	TenantID  int64      `gorm:"column:tenant_id"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

type OutboxRepository interface {
	eventbus.OutboxAppender
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

// Append writes the event row inside the emitter's transaction so the
// mirror is atomic with the business change.
func (r *outboxRepository) Append(ctx context.Context, tx *gorm.DB, e eventbus.Event) error {
	db := r.db
	if tx != nil {
		db = tx
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}

	row := OutboxEvent{
		ID:        uuid.New().String(),
		EventType: e.Name,
		Topic:     events.Topic,
		Payload:   payload,
		Status:    OutboxStatusPending,
		TenantID:  e.TenantID,
	}
	return db.WithContext(ctx).Create(&row).Error
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var out []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", OutboxStatusPending).
		Order("created_at").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  OutboxStatusSent,
			"error":   nil,
			"sent_at": time.Now(),
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > 500 {
		reason = reason[:500]
	}
	return r.db.WithContext(ctx).Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": OutboxStatusFailed,
			"error":  reason,
		}).Error
}
