package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BoardRoleMember = "member"
	BoardRoleAdmin  = "admin"
)

type BoardMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user" json:"board_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user" json:"user_id"`
	Role      string    `gorm:"not null;default:member" json:"role"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
