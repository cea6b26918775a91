// Package live pushes full-collection snapshots to connected clients over
// server-sent events, mirroring the document store's subscription model:
// every change delivers the whole current collection, and the pure
// calculators are re-run client-side on each snapshot.
package live

import (
	"context"
	"log/slog"
	"sync"

	platformredis "keepsake/internal/platform/redis"
)

// channelName is the Redis pub/sub channel carrying change notifications
// across instances. The payload is just the collection name; subscribers
// re-read their own snapshot.
const channelName = "keepsake:live"

// Snapshotter produces the full current state of one collection.
type Snapshotter func(ctx context.Context) (any, error)

// Hub fans collection-change notifications out to SSE subscribers. With
// Redis configured, notifications round-trip through pub/sub so every
// instance (including the publishing one) broadcasts; without it the hub
// broadcasts in-process only.
type Hub struct {
	logger *slog.Logger
	redis  *platformredis.Client

	mu        sync.RWMutex
	snapshots map[string]Snapshotter
	subs      map[string]map[chan struct{}]struct{}
}

func NewHub(logger *slog.Logger, redisClient *platformredis.Client) *Hub {
	return &Hub{
		logger:    logger,
		redis:     redisClient,
		snapshots: make(map[string]Snapshotter),
		subs:      make(map[string]map[chan struct{}]struct{}),
	}
}

// RegisterCollection exposes a collection over the live endpoint.
func (h *Hub) RegisterCollection(name string, fn Snapshotter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots[name] = fn
}

// Snapshot fetches the current state of a registered collection.
// The boolean reports whether the collection is registered.
func (h *Hub) Snapshot(ctx context.Context, name string) (any, bool, error) {
	h.mu.RLock()
	fn, ok := h.snapshots[name]
	h.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	snap, err := fn(ctx)
	return snap, true, err
}

// Notify signals that a collection changed. Failures are logged, never
// returned: a missed live update is not an error for the mutation.
func (h *Hub) Notify(ctx context.Context, collection string) {
	if h.redis != nil {
		if err := h.redis.Publish(ctx, channelName, collection).Err(); err == nil {
			return
		} else {
			h.logger.WarnContext(ctx, "live publish failed, broadcasting locally",
				"collection", collection,
				"error", err,
			)
		}
	}
	h.broadcast(collection)
}

// Run consumes cross-instance notifications until ctx is done. Without
// Redis there is nothing to consume and Run just waits.
func (h *Hub) Run(ctx context.Context) error {
	if h.redis == nil {
		<-ctx.Done()
		return nil
	}

	pubsub := h.redis.Subscribe(ctx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			h.broadcast(msg.Payload)
		}
	}
}

// subscribe registers a wake-up channel for one collection. The returned
// cancel func must be called when the subscriber disconnects.
func (h *Hub) subscribe(collection string) (<-chan struct{}, func()) {
	wake := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan struct{}]struct{})
	}
	h.subs[collection][wake] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs[collection], wake)
		h.mu.Unlock()
	}
	return wake, cancel
}

func (h *Hub) broadcast(collection string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for wake := range h.subs[collection] {
		// Non-blocking: a slow subscriber coalesces notifications instead
		// of queueing them, since each wake-up re-reads the full snapshot.
		select {
		case wake <- struct{}{}:
		default:
		}
	}
}
