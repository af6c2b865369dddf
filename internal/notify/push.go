package notify

import (
	"context"

	"github.com/google/uuid"
)

// PushSender delivers a push notification to every device registered by
// the owner of a business. It returns how many devices were reached and
// the per-device failures.
type PushSender interface {
	Send(ctx context.Context, businessID uuid.UUID, title, body string, data map[string]string) (int, []error)
}

type NoopPushSender struct{}

func (NoopPushSender) Send(context.Context, uuid.UUID, string, string, map[string]string) (int, []error) {
	return 0, nil
}
