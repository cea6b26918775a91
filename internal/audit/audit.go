// Package audit records who changed what, when. Emission is best-effort: a
// failed publish is logged and swallowed so it can never fail the mutation
// that triggered it.
package audit

import (
	"context"
	"log/slog"
	"time"

	"keepsake/pkg/requestcontext"
)

// Event is one audit record.
type Event struct {
	Action     string    `json:"action"`
	Collection string    `json:"collection"`
	Subject    string    `json:"subject"`
	UserID     string    `json:"user_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher delivers audit events to a durable sink.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Emitter builds events from request context and hands them to the
// publisher. A nil publisher degrades to log-only.
type Emitter struct {
	logger    *slog.Logger
	publisher Publisher
}

func NewEmitter(logger *slog.Logger, publisher Publisher) *Emitter {
	return &Emitter{logger: logger, publisher: publisher}
}

// Emit records one mutation. Never returns an error.
func (e *Emitter) Emit(ctx context.Context, action, collection, subject string) {
	event := Event{
		Action:     action,
		Collection: collection,
		Subject:    subject,
		RequestID:  requestcontext.RequestID(ctx),
		At:         requestcontext.Now(ctx),
	}
	if userID := requestcontext.UserID(ctx); !userID.IsZero() {
		event.UserID = userID.String()
	}

	e.logger.InfoContext(ctx, "audit",
		"action", event.Action,
		"collection", event.Collection,
		"subject", event.Subject,
		"user_id", event.UserID,
		"request_id", event.RequestID,
	)

	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.logger.WarnContext(ctx, "audit publish failed",
			"error", err,
			"action", event.Action,
			"collection", event.Collection,
		)
	}
}
