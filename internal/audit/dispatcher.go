package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-engine/internal/models"
	"github.com/BruksfildServices01/booking-engine/internal/notify"
)

type Event struct {
	BusinessID uuid.UUID
	Action     string
	Entity     string
	EntityID   *uuid.UUID
	Metadata   any
}

// Recorder writes audit events in the background; a failed or dropped
// audit write never fails the request that produced it.
type Recorder struct {
	writer     Writer
	dispatcher *notify.Dispatcher
}

func NewRecorder(writer Writer, dispatcher *notify.Dispatcher) *Recorder {
	return &Recorder{
		writer:     writer,
		dispatcher: dispatcher,
	}
}

func (r *Recorder) Record(ev Event) {
	if r == nil {
		return
	}
	entry := &models.AuditLog{
		BusinessID: ev.BusinessID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   encodeMetadata(ev.Metadata),
	}

	r.dispatcher.Dispatch(notify.Job{
		Name: "audit_" + ev.Action,
		Run: func(ctx context.Context) error {
			return r.writer.Write(ctx, entry)
		},
	})
}
