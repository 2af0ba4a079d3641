package socket

import (
	"encoding/json"

	"boardSync/internal/models"

	"github.com/google/uuid"
)

// SocketEvent is the inbound frame. Payload stays raw until the event is
// dispatched. RequestID is optional; when present the server answers it
// with an ack frame carrying the same id.
type SocketEvent struct {
	Event     string          `json:"event"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// ServerEvent is the outbound frame for room broadcasts.
type ServerEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// AckEvent answers one request on its originating connection only.
type AckEvent struct {
	Event     string     `json:"event"`
	RequestID string     `json:"request_id"`
	Payload   AckPayload `json:"payload"`
}

type AckPayload struct {
	Ok      bool          `json:"ok"`
	Status  int           `json:"status,omitempty"`
	Message string        `json:"message,omitempty"`
	BoardID string        `json:"board_id,omitempty"`
	Notes   []models.Note `json:"notes,omitempty"`
	Note    *models.Note  `json:"note,omitempty"`
}

// Inbound payloads. Board/note ids arrive as strings and are validated at
// the handler boundary.

type JoinBoardPayload struct {
	BoardID string `json:"board_id"`
}

type LeaveBoardPayload struct {
	BoardID string `json:"board_id"`
}

type CreateNotePayload struct {
	BoardID string                 `json:"board_id"`
	Note    map[string]interface{} `json:"note"`
}

type UpdateNotePayload struct {
	BoardID string                 `json:"board_id"`
	NoteID  string                 `json:"note_id"`
	Patch   map[string]interface{} `json:"patch"`
}

type DeleteNotePayload struct {
	BoardID string `json:"board_id"`
	NoteID  string `json:"note_id"`
}

type PresenceRequestPayload struct {
	BoardID string `json:"board_id"`
}

// Outbound payloads.

type NoteChangedPayload struct {
	BoardID      uuid.UUID    `json:"board_id"`
	Note         *models.Note `json:"note"`
	OriginatorID uuid.UUID    `json:"originator_id"`
}

type NoteDeletedPayload struct {
	BoardID      uuid.UUID `json:"board_id"`
	NoteID       uuid.UUID `json:"note_id"`
	OriginatorID uuid.UUID `json:"originator_id"`
}

type PresenceJoinedPayload struct {
	BoardID uuid.UUID    `json:"board_id"`
	User    PresenceUser `json:"user"`
}

type PresenceLeftPayload struct {
	BoardID uuid.UUID `json:"board_id"`
	UserID  uuid.UUID `json:"user_id"`
}

type PresenceListPayload struct {
	BoardID uuid.UUID      `json:"board_id"`
	Online  []PresenceUser `json:"online"`
}

type BoardDeletedPayload struct {
	BoardID uuid.UUID `json:"board_id"`
	ActorID uuid.UUID `json:"actor_id"`
}
