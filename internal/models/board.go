package models

import (
	"time"

	"github.com/google/uuid"
)

// Board is a collaborative canvas owned by one user. OwnerID is nullable
// because note creation may upsert a placeholder board in development.
type Board struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title     string        `gorm:"not null" json:"title"`
	OwnerID   *uuid.UUID    `gorm:"type:uuid;index" json:"owner_id"`
	Notes     []Note        `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Members   []BoardMember `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsOwnedBy reports whether userID is the board owner. The owner is an
// implicit member even without a BoardMember row.
func (b *Board) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}

// BoardSummary is the boards-list row: the board plus its note count.
type BoardSummary struct {
	Board
	NoteCount int64 `json:"note_count"`
}
