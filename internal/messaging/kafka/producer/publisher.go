package producer

import (
	"context"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"sige/internal/messaging/kafka"
)

func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(strconv.FormatInt(event.TenantID, 10)),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "tenant_id", Value: []byte(strconv.FormatInt(event.TenantID, 10))},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
