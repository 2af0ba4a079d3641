package handlers

import (
	"fmt"
	"strings"

	"boardSync/internal/errs"
	"boardSync/internal/models"
	"boardSync/internal/validators"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the handler tests.

type fakeAuthRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeAuthRepo) addUser(name string) *models.User {
	user := &models.User{
		ID:    uuid.New(),
		Name:  name,
		Email: fmt.Sprintf("%s@example.com", strings.ToLower(name)),
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeAuthRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *fakeAuthRepo) GetUserByID(id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeAuthRepo) CheckIfUserExists(email string) bool {
	_, err := r.GetUserByEmail(email)
	return err == nil
}

type fakeBoardRepo struct {
	boards  map[uuid.UUID]*models.Board
	members map[uuid.UUID][]models.BoardMember
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{
		boards:  make(map[uuid.UUID]*models.Board),
		members: make(map[uuid.UUID][]models.BoardMember),
	}
}

func (r *fakeBoardRepo) addBoard(ownerID uuid.UUID, title string) *models.Board {
	board := &models.Board{ID: uuid.New(), Title: title, OwnerID: &ownerID}
	r.boards[board.ID] = board
	return board
}

func (r *fakeBoardRepo) addMember(boardID, userID uuid.UUID) {
	r.members[boardID] = append(r.members[boardID], models.BoardMember{
		ID:      uuid.New(),
		BoardID: boardID,
		UserID:  userID,
		Role:    models.BoardRoleMember,
	})
}

func (r *fakeBoardRepo) CreateBoard(board *models.Board) (*models.Board, error) {
	if board.ID == uuid.Nil {
		board.ID = uuid.New()
	}
	r.boards[board.ID] = board
	return board, nil
}

func (r *fakeBoardRepo) GetBoardByID(boardID uuid.UUID) (*models.Board, error) {
	board, ok := r.boards[boardID]
	if !ok {
		return nil, errs.ErrBoardNotFound
	}
	return board, nil
}

func (r *fakeBoardRepo) GetUserBoards(userID uuid.UUID) ([]models.BoardSummary, error) {
	var summaries []models.BoardSummary
	for _, board := range r.boards {
		if board.IsOwnedBy(userID) {
			summaries = append(summaries, models.BoardSummary{Board: *board})
		}
	}
	return summaries, nil
}

func (r *fakeBoardRepo) DeleteBoard(boardID uuid.UUID) error {
	delete(r.boards, boardID)
	delete(r.members, boardID)
	return nil
}

func (r *fakeBoardRepo) IsBoardMember(boardID, userID uuid.UUID) (bool, error) {
	for _, member := range r.members[boardID] {
		if member.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBoardRepo) AddMember(member *models.BoardMember) (*models.BoardMember, error) {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	r.members[member.BoardID] = append(r.members[member.BoardID], *member)
	return member, nil
}

func (r *fakeBoardRepo) RemoveMember(boardID, userID uuid.UUID) error {
	members := r.members[boardID]
	for i, member := range members {
		if member.UserID == userID {
			r.members[boardID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return errs.ErrMemberNotFound
}

func (r *fakeBoardRepo) GetBoardMembers(boardID uuid.UUID) ([]models.BoardMember, error) {
	return r.members[boardID], nil
}

type fakeNoteRepo struct {
	boards map[uuid.UUID]string
	notes  map[uuid.UUID]*models.Note
	order  []uuid.UUID
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		boards: make(map[uuid.UUID]string),
		notes:  make(map[uuid.UUID]*models.Note),
	}
}

func (r *fakeNoteRepo) addBoard(boardID uuid.UUID) {
	r.boards[boardID] = "Board"
}

func (r *fakeNoteRepo) seedNote(boardID uuid.UUID, text string) *models.Note {
	note := &models.Note{
		ID:      uuid.New(),
		BoardID: boardID,
		Text:    text,
		X:       validators.NoteDefaultX,
		Y:       validators.NoteDefaultY,
		Width:   validators.NoteDefaultWidth,
		Height:  validators.NoteDefaultHeight,
		Color:   validators.NoteDefaultColor,
	}
	r.notes[note.ID] = note
	r.order = append(r.order, note.ID)
	return note
}

func (r *fakeNoteRepo) GetNotesSnapshot(boardID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	for _, id := range r.order {
		if note, ok := r.notes[id]; ok && note.BoardID == boardID {
			notes = append(notes, *note)
		}
	}
	return notes, nil
}

func (r *fakeNoteRepo) GetNoteByID(noteID uuid.UUID) (*models.Note, error) {
	note, ok := r.notes[noteID]
	if !ok {
		return nil, errs.ErrNoteNotFound
	}
	copied := *note
	return &copied, nil
}

func (r *fakeNoteRepo) CreateNote(note *models.Note) (*models.Note, error) {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	stored := *note
	r.notes[note.ID] = &stored
	r.order = append(r.order, note.ID)
	return note, nil
}

func (r *fakeNoteRepo) UpdateNoteFields(noteID uuid.UUID, fields map[string]interface{}) (*models.Note, error) {
	note, ok := r.notes[noteID]
	if !ok {
		return nil, errs.ErrNoteNotFound
	}
	for column, value := range fields {
		switch column {
		case "text":
			note.Text = value.(string)
		case "x":
			note.X = value.(int)
		case "y":
			note.Y = value.(int)
		case "width":
			note.Width = value.(int)
		case "height":
			note.Height = value.(int)
		case "color":
			note.Color = value.(string)
		}
	}
	copied := *note
	return &copied, nil
}

func (r *fakeNoteRepo) DeleteNote(noteID uuid.UUID) error {
	if _, ok := r.notes[noteID]; !ok {
		return errs.ErrNoteNotFound
	}
	delete(r.notes, noteID)
	return nil
}

func (r *fakeNoteRepo) BoardExists(boardID uuid.UUID) (bool, error) {
	_, ok := r.boards[boardID]
	return ok, nil
}

func (r *fakeNoteRepo) EnsureBoard(boardID uuid.UUID, title string) error {
	if _, ok := r.boards[boardID]; !ok {
		r.boards[boardID] = title
	}
	return nil
}
