package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PushEvent is the payload published for an external push worker.
type PushEvent struct {
	EventID    string            `json:"eventId"`
	BusinessID string            `json:"businessId"`
	Title      string            `json:"title"`
	Body       string            `json:"body"`
	Data       map[string]string `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// KafkaPushSender hands push notifications to a relay topic instead of
// calling a push provider directly.
type KafkaPushSender struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaPushSender(brokers []string, topic string) *KafkaPushSender {
	return &KafkaPushSender{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		now: time.Now,
	}
}

func (s *KafkaPushSender) Send(
	ctx context.Context,
	businessID uuid.UUID,
	title, body string,
	data map[string]string,
) (int, []error) {

	ev := PushEvent{
		EventID:    uuid.NewString(),
		BusinessID: businessID.String(),
		Title:      title,
		Body:       body,
		Data:       data,
		OccurredAt: s.now().UTC(),
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return 0, []error{err}
	}

	msg := kafka.Message{
		Key:   []byte(ev.BusinessID),
		Value: raw,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.EventID)},
			{Key: "event_type", Value: []byte("push.requested")},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return 0, []error{err}
	}
	return 1, nil
}

func (s *KafkaPushSender) Close() error {
	return s.writer.Close()
}
