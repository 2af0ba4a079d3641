package redis

import (
	"encoding/json"

	"github.com/google/uuid"
)

const REDIS_CHANNEL_BOARD = "board_events"

// BoardEventMessage is the envelope every room broadcast travels in over
// the redis relay before the hub fans it out.
type BoardEventMessage struct {
	Event   string          `json:"event"`
	BoardID uuid.UUID       `json:"board_id"`
	Payload json.RawMessage `json:"payload"`
}
