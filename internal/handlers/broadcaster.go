package handlers

import (
	"context"
	"encoding/json"

	redisModels "boardSync/internal/models/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Broadcaster carries confirmed board events to the room fan-out. The
// production implementation relays through redis pub/sub; tests swap in a
// synchronous in-process one.
type Broadcaster interface {
	Publish(event string, boardID uuid.UUID, payload interface{}) error
}

type RedisBroadcaster struct {
	redis *redis.Client
	ctx   context.Context
}

func NewRedisBroadcaster(redis *redis.Client, ctx context.Context) *RedisBroadcaster {
	return &RedisBroadcaster{
		redis: redis,
		ctx:   ctx,
	}
}

func (rb *RedisBroadcaster) Publish(event string, boardID uuid.UUID, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	message, err := json.Marshal(redisModels.BoardEventMessage{
		Event:   event,
		BoardID: boardID,
		Payload: raw,
	})
	if err != nil {
		return err
	}
	return rb.redis.Publish(rb.ctx, redisModels.REDIS_CHANNEL_BOARD, message).Err()
}
