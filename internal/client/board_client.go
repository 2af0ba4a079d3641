package client

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"boardSync/internal/enums"
	"boardSync/internal/errs"
	"boardSync/internal/models"
	socketModels "boardSync/internal/models/socket"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// BoardClient speaks the board socket protocol: it correlates requests
// with acks, feeds broadcasts into the reconciler and applies optimistic
// edits that are reverted when the server rejects them.
type BoardClient struct {
	conn       *websocket.Conn
	reconciler *BoardReconciler

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan socketModels.AckPayload
	closed  bool

	// Optional notification hooks, invoked from the read loop.
	OnPresenceList func(socketModels.PresenceListPayload)
	OnBoardDeleted func(socketModels.BoardDeletedPayload)
}

// Dial connects and authenticates with a bearer token. The server rejects
// the handshake before any events flow when the token is missing or bad.
func Dial(ctx context.Context, url, token string, selfID uuid.UUID) (*BoardClient, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}

	bc := &BoardClient{
		conn:       conn,
		reconciler: NewBoardReconciler(selfID, false),
		pending:    make(map[string]chan socketModels.AckPayload),
	}
	go bc.readLoop()
	return bc, nil
}

// Reconciler exposes the merged local state.
func (bc *BoardClient) Reconciler() *BoardReconciler {
	return bc.reconciler
}

// Notes returns the current merged note list.
func (bc *BoardClient) Notes() []models.Note {
	return bc.reconciler.Notes()
}

// LoadRESTSnapshot feeds a REST-fetched fallback snapshot into the merge;
// it is ignored once the socket join has confirmed.
func (bc *BoardClient) LoadRESTSnapshot(notes []models.Note) {
	bc.reconciler.ApplyRESTSnapshot(notes)
}

// Join subscribes to the board room. The returned snapshot replaces any
// local state, including one from a parallel REST fetch.
func (bc *BoardClient) Join(ctx context.Context, boardID uuid.UUID) ([]models.Note, error) {
	ack, err := bc.request(ctx, enums.SOCKET_EVENT_BOARD_JOIN, socketModels.JoinBoardPayload{
		BoardID: boardID.String(),
	})
	if err != nil {
		return nil, err
	}
	if !ack.Ok {
		return nil, ackErr(ack)
	}
	bc.reconciler.ApplyJoinSnapshot(ack.Notes)
	return ack.Notes, nil
}

// Leave unsubscribes; the server answers with no ack.
func (bc *BoardClient) Leave(boardID uuid.UUID) error {
	return bc.send(socketModels.SocketEvent{
		Event:   enums.SOCKET_EVENT_BOARD_LEAVE,
		Payload: mustMarshal(socketModels.LeaveBoardPayload{BoardID: boardID.String()}),
	})
}

func (bc *BoardClient) CreateNote(ctx context.Context, boardID uuid.UUID, payload map[string]interface{}) (*models.Note, error) {
	ack, err := bc.request(ctx, enums.SOCKET_EVENT_NOTE_CREATE, socketModels.CreateNotePayload{
		BoardID: boardID.String(),
		Note:    payload,
	})
	if err != nil {
		return nil, err
	}
	if !ack.Ok {
		return nil, ackErr(ack)
	}
	if ack.Note != nil {
		bc.reconciler.ApplyCreated(*ack.Note, uuid.Nil)
	}
	return ack.Note, nil
}

// UpdateNote applies the patch locally first, then sends it. A failed ack
// reverts the optimistic edit so the view rejoins the authoritative state.
func (bc *BoardClient) UpdateNote(ctx context.Context, boardID, noteID uuid.UUID, patch map[string]interface{}) (*models.Note, error) {
	revert, _ := bc.reconciler.ApplyOptimisticPatch(noteID, patch)

	ack, err := bc.request(ctx, enums.SOCKET_EVENT_NOTE_UPDATE, socketModels.UpdateNotePayload{
		BoardID: boardID.String(),
		NoteID:  noteID.String(),
		Patch:   patch,
	})
	if err != nil || !ack.Ok {
		if revert != nil {
			revert()
		}
		if err != nil {
			return nil, err
		}
		return nil, ackErr(ack)
	}
	return ack.Note, nil
}

func (bc *BoardClient) DeleteNote(ctx context.Context, boardID, noteID uuid.UUID) error {
	revert, _ := bc.reconciler.ApplyOptimisticDelete(noteID)

	ack, err := bc.request(ctx, enums.SOCKET_EVENT_NOTE_DELETE, socketModels.DeleteNotePayload{
		BoardID: boardID.String(),
		NoteID:  noteID.String(),
	})
	if err != nil || !ack.Ok {
		if revert != nil {
			revert()
		}
		if err != nil {
			return err
		}
		return ackErr(ack)
	}
	return nil
}

func (bc *BoardClient) RequestPresence(ctx context.Context, boardID uuid.UUID) error {
	ack, err := bc.request(ctx, enums.SOCKET_EVENT_PRESENCE_REQUEST, socketModels.PresenceRequestPayload{
		BoardID: boardID.String(),
	})
	if err != nil {
		return err
	}
	if !ack.Ok {
		return ackErr(ack)
	}
	return nil
}

func (bc *BoardClient) Close() error {
	bc.mu.Lock()
	bc.closed = true
	for id, ch := range bc.pending {
		close(ch)
		delete(bc.pending, id)
	}
	bc.mu.Unlock()
	return bc.conn.Close()
}

func (bc *BoardClient) request(ctx context.Context, event string, payload interface{}) (socketModels.AckPayload, error) {
	requestID := uuid.NewString()
	ch := make(chan socketModels.AckPayload, 1)

	bc.mu.Lock()
	if bc.closed {
		bc.mu.Unlock()
		return socketModels.AckPayload{}, errors.New("client closed")
	}
	bc.pending[requestID] = ch
	bc.mu.Unlock()

	err := bc.send(socketModels.SocketEvent{
		Event:     event,
		RequestID: requestID,
		Payload:   mustMarshal(payload),
	})
	if err != nil {
		bc.dropPending(requestID)
		return socketModels.AckPayload{}, err
	}

	select {
	case <-ctx.Done():
		bc.dropPending(requestID)
		return socketModels.AckPayload{}, ctx.Err()
	case ack, ok := <-ch:
		if !ok {
			return socketModels.AckPayload{}, errors.New("connection closed")
		}
		return ack, nil
	}
}

func (bc *BoardClient) send(frame socketModels.SocketEvent) error {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()
	return bc.conn.WriteJSON(frame)
}

func (bc *BoardClient) dropPending(requestID string) {
	bc.mu.Lock()
	delete(bc.pending, requestID)
	bc.mu.Unlock()
}

func (bc *BoardClient) readLoop() {
	for {
		var frame struct {
			Event     string          `json:"event"`
			RequestID string          `json:"request_id"`
			Payload   json.RawMessage `json:"payload"`
		}
		if err := bc.conn.ReadJSON(&frame); err != nil {
			bc.Close()
			return
		}
		bc.dispatch(frame.Event, frame.RequestID, frame.Payload)
	}
}

func (bc *BoardClient) dispatch(event, requestID string, payload json.RawMessage) {
	switch event {
	case enums.SOCKET_EVENT_ACK:
		var ack socketModels.AckPayload
		if err := json.Unmarshal(payload, &ack); err != nil {
			log.Printf("Error unmarshalling ack: %v", err)
			return
		}
		bc.mu.Lock()
		ch, ok := bc.pending[requestID]
		if ok {
			delete(bc.pending, requestID)
		}
		bc.mu.Unlock()
		if ok {
			ch <- ack
		}
	case enums.SOCKET_EVENT_NOTE_CREATED:
		var changed socketModels.NoteChangedPayload
		if err := json.Unmarshal(payload, &changed); err != nil || changed.Note == nil {
			return
		}
		bc.reconciler.ApplyCreated(*changed.Note, changed.OriginatorID)
	case enums.SOCKET_EVENT_NOTE_UPDATED:
		var changed socketModels.NoteChangedPayload
		if err := json.Unmarshal(payload, &changed); err != nil || changed.Note == nil {
			return
		}
		bc.reconciler.ApplyUpdated(*changed.Note, changed.OriginatorID)
	case enums.SOCKET_EVENT_NOTE_DELETED:
		var deleted socketModels.NoteDeletedPayload
		if err := json.Unmarshal(payload, &deleted); err != nil {
			return
		}
		bc.reconciler.ApplyDeleted(deleted.NoteID, deleted.OriginatorID)
	case enums.SOCKET_EVENT_PRESENCE_LIST:
		if bc.OnPresenceList == nil {
			return
		}
		var list socketModels.PresenceListPayload
		if err := json.Unmarshal(payload, &list); err != nil {
			return
		}
		bc.OnPresenceList(list)
	case enums.SOCKET_EVENT_BOARD_DELETED:
		if bc.OnBoardDeleted == nil {
			return
		}
		var deleted socketModels.BoardDeletedPayload
		if err := json.Unmarshal(payload, &deleted); err != nil {
			return
		}
		bc.OnBoardDeleted(deleted)
	}
}

func ackErr(ack socketModels.AckPayload) error {
	if ack.Message == "" {
		return errs.Error("request rejected")
	}
	return errs.Error(ack.Message)
}

func mustMarshal(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
