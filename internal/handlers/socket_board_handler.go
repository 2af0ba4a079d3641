package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"boardSync/internal/enums"
	"boardSync/internal/errs"
	"boardSync/internal/models"
	redisModels "boardSync/internal/models/redis"
	socketModels "boardSync/internal/models/socket"
	"boardSync/internal/msgs"
	"boardSync/internal/services"
	"boardSync/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// SocketBoardHandler coordinates connection sessions: handshake
// authentication, room joins, the note mutation path and disconnect
// cleanup. Each connection runs its own read loop; room membership and
// presence are only touched through the hub and registry.
type SocketBoardHandler struct {
	ctx          context.Context
	upgrader     websocket.Upgrader
	hub          *socketModels.BoardHub
	presence     *socketModels.PresenceRegistry
	redis        *redis.Client
	broadcaster  Broadcaster
	authService  *services.AuthenticationService
	boardService *services.BoardService
	noteService  *services.NoteService
	jwtKey       []byte
}

func NewSocketBoardHandler(
	redis *redis.Client,
	ctx context.Context,
	authService *services.AuthenticationService,
	boardService *services.BoardService,
	noteService *services.NoteService,
	jwtKey []byte,
) *SocketBoardHandler {
	sbh := &SocketBoardHandler{
		ctx:          ctx,
		redis:        redis,
		authService:  authService,
		boardService: boardService,
		noteService:  noteService,
		jwtKey:       jwtKey,
		hub:          socketModels.NewBoardHub(),
		presence:     socketModels.NewPresenceRegistry(),
	}
	sbh.broadcaster = NewRedisBroadcaster(redis, ctx)
	return sbh
}

func (sbh *SocketBoardHandler) StartSocket() {
	sbh.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	go sbh.HandleRedisMessages()
}

// Hub exposes the room registry to the REST layer and to shutdown.
func (sbh *SocketBoardHandler) Hub() *socketModels.BoardHub {
	return sbh.hub
}

// Broadcaster exposes the event relay so the REST layer can publish
// board-level events such as board:deleted.
func (sbh *SocketBoardHandler) Broadcaster() Broadcaster {
	return sbh.broadcaster
}

// HandleSocketBoardRoute authenticates the handshake and hands the
// connection to the session loop. A missing credential and an invalid one
// are rejected with distinguishable reasons before any event is read.
func (sbh *SocketBoardHandler) HandleSocketBoardRoute(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		header := ctx.GetHeader("Authorization")
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrAuthMissing},
		})
		return
	}

	claims, err := utils.VerifyToken(token, sbh.jwtKey)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrAuthInvalid},
		})
		return
	}

	sbh.HandleConnections(ctx, claims)
}

func (sbh *SocketBoardHandler) HandleConnections(ctx *gin.Context, userInfo *models.Claims) {
	ws, err := sbh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer func(ws *websocket.Conn) {
		if err := ws.Close(); err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}(ws)

	client := socketModels.NewSocketClient(ws, userInfo.ID, userInfo.Name, userInfo.Email)

	ws.SetCloseHandler(func(code int, text string) error {
		sbh.cleanupClient(client)
		return nil
	})

	sbh.handleIncomingEvents(ws, client)
}

func (sbh *SocketBoardHandler) handleIncomingEvents(ws *websocket.Conn, client *socketModels.SocketClient) {
	for {
		var event socketModels.SocketEvent
		if err := ws.ReadJSON(&event); err != nil {
			log.Printf("Error reading json: %v", err)
			sbh.cleanupClient(client)
			break
		}
		sbh.handleEvent(client, event)
	}
}

func (sbh *SocketBoardHandler) handleEvent(client *socketModels.SocketClient, event socketModels.SocketEvent) {
	switch event.Event {
	case enums.SOCKET_EVENT_BOARD_JOIN:
		sbh.ack(client, event, sbh.handleJoinEvent(client, event.Payload))
	case enums.SOCKET_EVENT_BOARD_LEAVE:
		sbh.handleLeaveEvent(client, event.Payload)
	case enums.SOCKET_EVENT_NOTE_CREATE:
		sbh.ack(client, event, sbh.handleCreateNoteEvent(client, event.Payload))
	case enums.SOCKET_EVENT_NOTE_UPDATE:
		sbh.ack(client, event, sbh.handleUpdateNoteEvent(client, event.Payload))
	case enums.SOCKET_EVENT_NOTE_DELETE:
		sbh.ack(client, event, sbh.handleDeleteNoteEvent(client, event.Payload))
	case enums.SOCKET_EVENT_PRESENCE_REQUEST:
		sbh.ack(client, event, sbh.handlePresenceRequestEvent(client, event.Payload))
	default:
		log.Printf("Unknown event: %v", event.Event)
	}
}

// ack answers the originating connection only, and only when the request
// asked for one. Failed mutations never reach the room.
func (sbh *SocketBoardHandler) ack(client *socketModels.SocketClient, event socketModels.SocketEvent, payload socketModels.AckPayload) {
	if event.RequestID == "" {
		return
	}
	sbh.hub.SendTo(client, socketModels.AckEvent{
		Event:     enums.SOCKET_EVENT_ACK,
		RequestID: event.RequestID,
		Payload:   payload,
	})
}

func (sbh *SocketBoardHandler) handleJoinEvent(client *socketModels.SocketClient, payload json.RawMessage) socketModels.AckPayload {
	var join socketModels.JoinBoardPayload
	if err := json.Unmarshal(payload, &join); err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidBoardId)
	}
	boardID, err := uuid.Parse(join.BoardID)
	if err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidBoardId)
	}

	if err := sbh.boardService.AuthorizeJoin(boardID, client.UserID); err != nil {
		switch {
		case errors.Is(err, errs.ErrBoardNotFound):
			return ackError(http.StatusNotFound, errs.ErrBoardNotFound)
		case errors.Is(err, errs.ErrForbidden):
			return ackError(http.StatusForbidden, errs.ErrForbidden)
		default:
			log.Printf("board:join error: %v", err)
			return ackError(http.StatusInternalServerError, errs.Error(msgs.MsgOperationFailed))
		}
	}

	sbh.hub.Join(boardID, client)
	client.AddRoom(boardID)

	// Fetch the latest profile so presence carries current fields.
	presenceUser := client.PresenceUser()
	if user, err := sbh.authService.GetUserByID(client.UserID); err == nil {
		presenceUser = socketModels.PresenceUser{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	sbh.presence.MarkOnline(boardID, presenceUser)
	sbh.publish(enums.SOCKET_EVENT_PRESENCE_JOINED, boardID, socketModels.PresenceJoinedPayload{
		BoardID: boardID,
		User:    presenceUser,
	})
	sbh.publishPresenceList(boardID)

	snapshot, snapshotErrs := sbh.noteService.GetNotesSnapshot(boardID)
	if len(snapshotErrs) > 0 {
		log.Printf("board:join snapshot error: %v", snapshotErrs)
		return ackError(http.StatusInternalServerError, errs.Error(msgs.MsgOperationFailed))
	}

	return socketModels.AckPayload{
		Ok:      true,
		BoardID: boardID.String(),
		Notes:   snapshot,
	}
}

func (sbh *SocketBoardHandler) handleLeaveEvent(client *socketModels.SocketClient, payload json.RawMessage) {
	var leave socketModels.LeaveBoardPayload
	if err := json.Unmarshal(payload, &leave); err != nil {
		return
	}
	boardID, err := uuid.Parse(leave.BoardID)
	if err != nil {
		return
	}
	sbh.leaveBoard(client, boardID)
}

func (sbh *SocketBoardHandler) leaveBoard(client *socketModels.SocketClient, boardID uuid.UUID) {
	sbh.hub.Leave(boardID, client)
	client.RemoveRoom(boardID)
	sbh.presence.MarkOffline(boardID, client.UserID)
	sbh.publish(enums.SOCKET_EVENT_PRESENCE_LEFT, boardID, socketModels.PresenceLeftPayload{
		BoardID: boardID,
		UserID:  client.UserID,
	})
	sbh.publishPresenceList(boardID)
}

func (sbh *SocketBoardHandler) handleCreateNoteEvent(client *socketModels.SocketClient, payload json.RawMessage) socketModels.AckPayload {
	var create socketModels.CreateNotePayload
	if err := json.Unmarshal(payload, &create); err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidRequestBody)
	}
	boardID, gate := sbh.gateMutation(client, create.BoardID)
	if gate != nil {
		return *gate
	}

	note, createErrs := sbh.noteService.CreateNote(boardID, create.Note)
	if len(createErrs) > 0 {
		log.Printf("note:create error: %v", createErrs)
		return ackError(0, errs.Error(msgs.MsgOperationFailed))
	}

	sbh.publish(enums.SOCKET_EVENT_NOTE_CREATED, boardID, socketModels.NoteChangedPayload{
		BoardID:      boardID,
		Note:         note,
		OriginatorID: client.UserID,
	})
	return socketModels.AckPayload{Ok: true, Note: note}
}

func (sbh *SocketBoardHandler) handleUpdateNoteEvent(client *socketModels.SocketClient, payload json.RawMessage) socketModels.AckPayload {
	var update socketModels.UpdateNotePayload
	if err := json.Unmarshal(payload, &update); err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidRequestBody)
	}
	boardID, gate := sbh.gateMutation(client, update.BoardID)
	if gate != nil {
		return *gate
	}
	noteID, err := uuid.Parse(update.NoteID)
	if err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidNoteId)
	}

	note, updateErrs := sbh.noteService.UpdateNote(boardID, noteID, update.Patch)
	if len(updateErrs) > 0 {
		if services.IsNotFound(updateErrs) {
			return ackError(0, errs.Error(msgs.MsgNoteNotFound))
		}
		log.Printf("note:update error: %v", updateErrs)
		return ackError(0, errs.Error(msgs.MsgOperationFailed))
	}

	sbh.publish(enums.SOCKET_EVENT_NOTE_UPDATED, boardID, socketModels.NoteChangedPayload{
		BoardID:      boardID,
		Note:         note,
		OriginatorID: client.UserID,
	})
	return socketModels.AckPayload{Ok: true, Note: note}
}

func (sbh *SocketBoardHandler) handleDeleteNoteEvent(client *socketModels.SocketClient, payload json.RawMessage) socketModels.AckPayload {
	var del socketModels.DeleteNotePayload
	if err := json.Unmarshal(payload, &del); err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidRequestBody)
	}
	boardID, gate := sbh.gateMutation(client, del.BoardID)
	if gate != nil {
		return *gate
	}
	noteID, err := uuid.Parse(del.NoteID)
	if err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidNoteId)
	}

	ok, deleteErrs := sbh.noteService.DeleteNote(boardID, noteID)
	if len(deleteErrs) > 0 {
		log.Printf("note:delete error: %v", deleteErrs)
		return ackError(0, errs.Error(msgs.MsgOperationFailed))
	}
	if !ok {
		return ackError(0, errs.Error(msgs.MsgNoteNotFound))
	}

	sbh.publish(enums.SOCKET_EVENT_NOTE_DELETED, boardID, socketModels.NoteDeletedPayload{
		BoardID:      boardID,
		NoteID:       noteID,
		OriginatorID: client.UserID,
	})
	return socketModels.AckPayload{Ok: true}
}

func (sbh *SocketBoardHandler) handlePresenceRequestEvent(client *socketModels.SocketClient, payload json.RawMessage) socketModels.AckPayload {
	var request socketModels.PresenceRequestPayload
	if err := json.Unmarshal(payload, &request); err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidBoardId)
	}
	boardID, err := uuid.Parse(request.BoardID)
	if err != nil {
		return ackError(http.StatusBadRequest, errs.ErrInvalidBoardId)
	}

	// The list goes back to the requester only, not the whole room.
	sbh.hub.SendTo(client, socketModels.ServerEvent{
		Event: enums.SOCKET_EVENT_PRESENCE_LIST,
		Payload: socketModels.PresenceListPayload{
			BoardID: boardID,
			Online:  sbh.presence.ListOnline(boardID),
		},
	})
	return socketModels.AckPayload{Ok: true}
}

// gateMutation rejects note mutations from connections that never passed
// the join authorization for the claimed board.
func (sbh *SocketBoardHandler) gateMutation(client *socketModels.SocketClient, rawBoardID string) (uuid.UUID, *socketModels.AckPayload) {
	boardID, err := uuid.Parse(rawBoardID)
	if err != nil {
		rejection := ackError(http.StatusBadRequest, errs.ErrInvalidBoardId)
		return uuid.Nil, &rejection
	}
	if !client.InRoom(boardID) {
		rejection := ackError(http.StatusForbidden, errs.ErrNotJoined)
		return uuid.Nil, &rejection
	}
	return boardID, nil
}

// cleanupClient runs the leave path for every room the connection held,
// so a gone connection leaves no stale presence or room entry behind.
func (sbh *SocketBoardHandler) cleanupClient(client *socketModels.SocketClient) {
	for _, boardID := range client.Rooms() {
		sbh.leaveBoard(client, boardID)
	}
}

func (sbh *SocketBoardHandler) publish(event string, boardID uuid.UUID, payload interface{}) {
	if err := sbh.broadcaster.Publish(event, boardID, payload); err != nil {
		log.Printf("Error publishing event %v: %v", event, err)
	}
}

func (sbh *SocketBoardHandler) publishPresenceList(boardID uuid.UUID) {
	sbh.publish(enums.SOCKET_EVENT_PRESENCE_LIST, boardID, socketModels.PresenceListPayload{
		BoardID: boardID,
		Online:  sbh.presence.ListOnline(boardID),
	})
}

// DeliverEvent fans one relayed event out to the board's room.
func (sbh *SocketBoardHandler) DeliverEvent(message redisModels.BoardEventMessage) {
	sbh.hub.Broadcast(message.BoardID, socketModels.ServerEvent{
		Event:   message.Event,
		Payload: message.Payload,
	})
}

func (sbh *SocketBoardHandler) HandleRedisMessages() {
	ch := sbh.SubscribeToChannel(sbh.redis, redisModels.REDIS_CHANNEL_BOARD)
	for msg := range ch {
		var message redisModels.BoardEventMessage
		if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
			log.Printf("Error unmarshalling message: %v", err)
			continue
		}
		sbh.DeliverEvent(message)
	}
}

func (sbh *SocketBoardHandler) SubscribeToChannel(redis *redis.Client, channel string) <-chan *redis.Message {
	pubsub := redis.Subscribe(sbh.ctx, channel)
	if _, err := pubsub.Receive(sbh.ctx); err != nil {
		log.Fatalf("Could not subscribe to channel: %v", err)
	}
	return pubsub.Channel()
}

func (sbh *SocketBoardHandler) WaitForShutdown(httpServer *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := httpServer.Shutdown(sbh.ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	sbh.hub.CloseAll()

	log.Println("Server exiting")
}

func ackError(status int, err error) socketModels.AckPayload {
	return socketModels.AckPayload{
		Ok:      false,
		Status:  status,
		Message: err.Error(),
	}
}
