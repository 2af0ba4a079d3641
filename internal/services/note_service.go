package services

import (
	"errors"

	"boardSync/internal/errs"
	"boardSync/internal/models"
	"boardSync/internal/validators"

	"github.com/google/uuid"
)

// NoteService is the authoritative mutation path for notes. It normalizes
// payloads, persists through the store gateway and hands the confirmed
// records back to the socket layer for fan-out. It never caches persisted
// state beyond a single request.
type NoteService struct {
	noteRepo NoteRepository
}

func NewNoteService(noteRepo NoteRepository) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
	}
}

// GetNotesSnapshot returns the board's notes in creation order. An unknown
// board yields an empty snapshot, not an error.
func (ns *NoteService) GetNotesSnapshot(boardID uuid.UUID) ([]models.Note, []error) {
	exists, err := ns.noteRepo.BoardExists(boardID)
	if err != nil {
		return nil, []error{err}
	}
	if !exists {
		return []models.Note{}, nil
	}
	notes, err := ns.noteRepo.GetNotesSnapshot(boardID)
	if err != nil {
		return nil, []error{err}
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// CreateNote persists a fully defaulted note. Malformed payload fields
// coerce to defaults; the board is upserted as a placeholder when unknown.
func (ns *NoteService) CreateNote(boardID uuid.UUID, payload map[string]interface{}) (*models.Note, []error) {
	if err := ns.noteRepo.EnsureBoard(boardID, "Untitled Board"); err != nil {
		return nil, []error{err}
	}
	note := validators.NormalizeNoteCreate(payload)
	note.BoardID = boardID
	created, err := ns.noteRepo.CreateNote(&note)
	if err != nil {
		return nil, []error{err}
	}
	return created, nil
}

// UpdateNote applies a field-level partial patch. Only present, well-typed
// fields are written; an empty effective patch returns the record
// unchanged. Returns ErrNoteNotFound when the id does not resolve.
func (ns *NoteService) UpdateNote(boardID, noteID uuid.UUID, patch map[string]interface{}) (*models.Note, []error) {
	fields := validators.NormalizeNotePatch(patch)
	if len(fields) == 0 {
		existing, err := ns.noteRepo.GetNoteByID(noteID)
		if err != nil {
			return nil, []error{err}
		}
		return existing, nil
	}
	updated, err := ns.noteRepo.UpdateNoteFields(noteID, fields)
	if err != nil {
		return nil, []error{err}
	}
	return updated, nil
}

// DeleteNote removes the note only when it exists and belongs to the
// claimed board, so a guessed note id cannot reach across boards. A miss
// reports false, not an error.
func (ns *NoteService) DeleteNote(boardID, noteID uuid.UUID) (bool, []error) {
	note, err := ns.noteRepo.GetNoteByID(noteID)
	if err != nil {
		if errors.Is(err, errs.ErrNoteNotFound) {
			return false, nil
		}
		return false, []error{err}
	}
	if note.BoardID != boardID {
		return false, nil
	}
	if err := ns.noteRepo.DeleteNote(noteID); err != nil {
		return false, []error{err}
	}
	return true, nil
}
