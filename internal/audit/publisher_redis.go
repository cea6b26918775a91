package audit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	platformredis "keepsake/internal/platform/redis"
)

// StreamName is the Redis stream audit events are appended to.
const StreamName = "keepsake:audit"

// RedisPublisher appends audit events to a capped Redis stream.
type RedisPublisher struct {
	client *platformredis.Client
	maxLen int64
}

func NewRedisPublisher(client *platformredis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, maxLen: 10000}
}

func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"action":     event.Action,
			"collection": event.Collection,
			"subject":    event.Subject,
			"user_id":    event.UserID,
			"request_id": event.RequestID,
			"at":         event.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd audit event: %w", err)
	}
	return nil
}
