package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "keepsake/pkg/domain"
	"keepsake/pkg/requestcontext"
)

type capturePublisher struct {
	events []Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, event Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmitCarriesRequestContext(t *testing.T) {
	publisher := &capturePublisher{}
	emitter := NewEmitter(discardLogger(), publisher)

	userID := id.UserID(uuid.New())
	ctx := requestcontext.WithUserID(context.Background(), userID)
	ctx = requestcontext.WithRequestID(ctx, "req-42")

	emitter.Emit(ctx, "note.pinned", "notes", "note-1")

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "note.pinned", event.Action)
	assert.Equal(t, "notes", event.Collection)
	assert.Equal(t, "note-1", event.Subject)
	assert.Equal(t, userID.String(), event.UserID)
	assert.Equal(t, "req-42", event.RequestID)
}

func TestEmitSwallowsPublishFailures(t *testing.T) {
	emitter := NewEmitter(discardLogger(), &capturePublisher{err: errors.New("stream down")})

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "timer.created", "timers", "t-1")
	})
}

func TestEmitWithoutPublisherIsLogOnly(t *testing.T) {
	emitter := NewEmitter(discardLogger(), nil)

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "timer.created", "timers", "t-1")
	})
}
