package socket

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

type PresenceUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PresenceRegistry is the in-memory board -> online users mapping. Entries
// are ephemeral; a process restart loses them, which is fine because they
// only reflect current liveness.
//
// MarkOffline removes the user unconditionally, even if the same user still
// holds another session in the room. That matches the per-session removal
// the rest of the system expects; counting sessions per user would change
// observable presence semantics.
type PresenceRegistry struct {
	mu     sync.Mutex
	online map[uuid.UUID]map[uuid.UUID]PresenceUser
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		online: make(map[uuid.UUID]map[uuid.UUID]PresenceUser),
	}
}

// MarkOnline records the user as online on the board. Re-marking replaces
// the stored profile fields, last write wins.
func (p *PresenceRegistry) MarkOnline(boardID uuid.UUID, user PresenceUser) {
	if user.ID == uuid.Nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.online[boardID]; !ok {
		p.online[boardID] = make(map[uuid.UUID]PresenceUser)
	}
	p.online[boardID][user.ID] = user
}

// MarkOffline removes the user from the board. Emptied boards are evicted
// from the registry.
func (p *PresenceRegistry) MarkOffline(boardID, userID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	users, ok := p.online[boardID]
	if !ok {
		return
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(p.online, boardID)
	}
}

// ListOnline returns a snapshot copy, safe to serialize while other
// sessions keep joining and leaving. Sorted by id for a stable order.
func (p *PresenceRegistry) ListOnline(boardID uuid.UUID) []PresenceUser {
	p.mu.Lock()
	defer p.mu.Unlock()
	users := p.online[boardID]
	list := make([]PresenceUser, 0, len(users))
	for _, user := range users {
		list = append(list, user)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID.String() < list[j].ID.String()
	})
	return list
}

// HasBoard reports whether the board still holds any online users.
func (p *PresenceRegistry) HasBoard(boardID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.online[boardID]
	return ok
}
