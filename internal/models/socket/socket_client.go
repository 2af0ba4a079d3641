package socket

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is the slice of *websocket.Conn the hub needs to fan events out.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// SocketClient is one live connection: one authenticated user plus the set
// of board rooms the connection currently holds. A user may hold several
// clients at once (multi-tab); presence is keyed by user id, not client.
type SocketClient struct {
	Conn   Conn
	UserID uuid.UUID
	Name   string
	Email  string

	// writeMu serializes writes: acks go out from the session's read
	// loop while room broadcasts come from the relay goroutine, and the
	// connection permits only one writer at a time.
	writeMu sync.Mutex

	mu    sync.Mutex
	rooms map[uuid.UUID]struct{}
}

func NewSocketClient(conn Conn, userID uuid.UUID, name, email string) *SocketClient {
	return &SocketClient{
		Conn:   conn,
		UserID: userID,
		Name:   name,
		Email:  email,
		rooms:  make(map[uuid.UUID]struct{}),
	}
}

// WriteJSON writes one frame under the connection's write lock. All
// writes to the connection must go through here.
func (c *SocketClient) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

func (c *SocketClient) AddRoom(boardID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[boardID] = struct{}{}
}

func (c *SocketClient) RemoveRoom(boardID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, boardID)
}

func (c *SocketClient) InRoom(boardID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.rooms[boardID]
	return ok
}

// Rooms returns a snapshot of the joined boards, safe to iterate while the
// client is being torn down.
func (c *SocketClient) Rooms() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (c *SocketClient) PresenceUser() PresenceUser {
	return PresenceUser{ID: c.UserID, Name: c.Name, Email: c.Email}
}
