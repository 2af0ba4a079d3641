package socket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// BoardHub maps each board to its broadcast set of live connections. It is
// the only writer of that map; handlers go through its methods.
type BoardHub struct {
	mu    sync.Mutex
	rooms map[uuid.UUID][]*SocketClient
}

func NewBoardHub() *BoardHub {
	return &BoardHub{
		rooms: make(map[uuid.UUID][]*SocketClient),
	}
}

// Join adds the client to the board's broadcast set. Joining twice is a
// no-op.
func (h *BoardHub) Join(boardID uuid.UUID, client *SocketClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, existing := range h.rooms[boardID] {
		if existing == client {
			return
		}
	}
	h.rooms[boardID] = append(h.rooms[boardID], client)
}

// Leave removes the client from the board's broadcast set. Leaving a room
// the client never joined is a no-op. Emptied rooms are dropped from the
// map to bound memory over the process lifetime.
func (h *BoardHub) Leave(boardID uuid.UUID, client *SocketClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(boardID, client)
}

func (h *BoardHub) leaveLocked(boardID uuid.UUID, client *SocketClient) {
	clients := h.rooms[boardID]
	for i, existing := range clients {
		if existing == client {
			h.rooms[boardID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.rooms[boardID]) == 0 {
		delete(h.rooms, boardID)
	}
}

// Broadcast writes the event to every connection currently in the board's
// room. Writes happen outside the hub lock, serialized per connection by
// the client's write lock. A write failure evicts just that connection.
func (h *BoardHub) Broadcast(boardID uuid.UUID, event ServerEvent) {
	h.mu.Lock()
	clients := make([]*SocketClient, len(h.rooms[boardID]))
	copy(clients, h.rooms[boardID])
	h.mu.Unlock()

	for _, client := range clients {
		if err := client.WriteJSON(event); err != nil {
			log.Printf("Error writing json: %v", err)
			if closeErr := client.Conn.Close(); closeErr != nil {
				log.Printf("Error closing connection: %v", closeErr)
			}
			h.Leave(boardID, client)
		}
	}
}

// SendTo writes one frame to a single connection.
func (h *BoardHub) SendTo(client *SocketClient, frame interface{}) {
	if err := client.WriteJSON(frame); err != nil {
		log.Printf("Error writing json: %v", err)
	}
}

// RoomSize reports how many connections the board's room holds.
func (h *BoardHub) RoomSize(boardID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[boardID])
}

// CloseAll closes every connection and empties the hub, used on shutdown.
func (h *BoardHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for boardID, clients := range h.rooms {
		for _, client := range clients {
			if err := client.Conn.Close(); err != nil {
				log.Printf("Error closing connection: %v", err)
			}
		}
		delete(h.rooms, boardID)
	}
}
