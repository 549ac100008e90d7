package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes change notifications onto the shared broadcast
// channel. Publishing is best-effort: a missing Redis connection or a
// failed publish is logged and never surfaced to the caller.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload map[string]any) {
	if p == nil || p.rdb == nil {
		return
	}
	data, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("events: marshal %s: %v", eventType, err)
		return
	}
	if err := p.rdb.Publish(ctx, "broadcast", string(data)).Err(); err != nil {
		log.Printf("events: publish %s: %v", eventType, err)
	}
}
