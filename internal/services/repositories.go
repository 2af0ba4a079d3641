package services

import (
	"boardSync/internal/models"

	"github.com/google/uuid"
)

// Repository contracts the services depend on. The gorm implementations
// live in internal/repositories; tests inject in-memory fakes.

type AuthenticationRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)
	CheckIfUserExists(email string) bool
}

type BoardRepository interface {
	CreateBoard(board *models.Board) (*models.Board, error)
	GetBoardByID(boardID uuid.UUID) (*models.Board, error)
	GetUserBoards(userID uuid.UUID) ([]models.BoardSummary, error)
	DeleteBoard(boardID uuid.UUID) error
	IsBoardMember(boardID, userID uuid.UUID) (bool, error)
	AddMember(member *models.BoardMember) (*models.BoardMember, error)
	RemoveMember(boardID, userID uuid.UUID) error
	GetBoardMembers(boardID uuid.UUID) ([]models.BoardMember, error)
}

type NoteRepository interface {
	GetNotesSnapshot(boardID uuid.UUID) ([]models.Note, error)
	GetNoteByID(noteID uuid.UUID) (*models.Note, error)
	CreateNote(note *models.Note) (*models.Note, error)
	UpdateNoteFields(noteID uuid.UUID, fields map[string]interface{}) (*models.Note, error)
	DeleteNote(noteID uuid.UUID) error
	BoardExists(boardID uuid.UUID) (bool, error)
	EnsureBoard(boardID uuid.UUID, title string) error
}
