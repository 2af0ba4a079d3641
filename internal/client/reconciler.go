package client

import (
	"sync"

	"boardSync/internal/models"
	"boardSync/internal/validators"

	"github.com/google/uuid"
)

// BoardReconciler merges the three sources of note state a client sees:
// the REST-fetched snapshot, the authoritative socket-join snapshot and
// the live event stream, while local optimistic edits stay instantaneous.
//
// The join snapshot always wins over the REST one regardless of arrival
// order; events merge idempotently by id, so re-applying the echo of an
// already-applied optimistic edit is a no-op.
type BoardReconciler struct {
	mu           sync.Mutex
	selfID       uuid.UUID
	suppressEcho bool
	joined       bool
	notes        []models.Note
}

func NewBoardReconciler(selfID uuid.UUID, suppressEcho bool) *BoardReconciler {
	return &BoardReconciler{
		selfID:       selfID,
		suppressEcho: suppressEcho,
	}
}

// ApplyRESTSnapshot applies the fallback snapshot unless the socket join
// already confirmed, so a stale parallel fetch cannot clobber joined state.
func (r *BoardReconciler) ApplyRESTSnapshot(notes []models.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.joined {
		return
	}
	r.notes = append([]models.Note(nil), notes...)
}

// ApplyJoinSnapshot replaces local state with the authoritative snapshot
// and marks the session joined.
func (r *BoardReconciler) ApplyJoinSnapshot(notes []models.Note) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append([]models.Note(nil), notes...)
	r.joined = true
}

// Reset clears the joined flag, used around a reconnect so the next join
// snapshot is treated as authoritative again.
func (r *BoardReconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joined = false
	r.notes = nil
}

func (r *BoardReconciler) Joined() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.joined
}

func (r *BoardReconciler) ApplyCreated(note models.Note, originatorID uuid.UUID) {
	if r.isOwnEcho(originatorID) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertLocked(note)
}

func (r *BoardReconciler) ApplyUpdated(note models.Note, originatorID uuid.UUID) {
	if r.isOwnEcho(originatorID) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertLocked(note)
}

func (r *BoardReconciler) ApplyDeleted(noteID, originatorID uuid.UUID) {
	if r.isOwnEcho(originatorID) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(noteID)
}

// ApplyOptimisticPatch applies a local edit immediately and returns a
// revert for use when the server ack reports failure. The patch passes
// through the same normalization as the server write path, so the local
// view converges with what the broadcast will carry.
func (r *BoardReconciler) ApplyOptimisticPatch(noteID uuid.UUID, patch map[string]interface{}) (revert func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(noteID)
	if idx < 0 {
		return nil, false
	}
	previous := r.notes[idx]
	note := previous
	applyFields(&note, validators.NormalizeNotePatch(patch))
	r.notes[idx] = note
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if idx := r.indexLocked(noteID); idx >= 0 {
			r.notes[idx] = previous
		}
	}, true
}

// ApplyOptimisticDelete removes the note locally and returns a revert
// restoring it at its original position.
func (r *BoardReconciler) ApplyOptimisticDelete(noteID uuid.UUID) (revert func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(noteID)
	if idx < 0 {
		return nil, false
	}
	previous := r.notes[idx]
	r.notes = append(r.notes[:idx], r.notes[idx+1:]...)
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.indexLocked(noteID) >= 0 {
			return
		}
		if idx >= len(r.notes) {
			r.notes = append(r.notes, previous)
			return
		}
		r.notes = append(r.notes[:idx], append([]models.Note{previous}, r.notes[idx:]...)...)
	}, true
}

// Notes returns a snapshot copy of the merged note list.
func (r *BoardReconciler) Notes() []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Note(nil), r.notes...)
}

func (r *BoardReconciler) isOwnEcho(originatorID uuid.UUID) bool {
	return r.suppressEcho && originatorID == r.selfID
}

func (r *BoardReconciler) indexLocked(noteID uuid.UUID) int {
	for i := range r.notes {
		if r.notes[i].ID == noteID {
			return i
		}
	}
	return -1
}

func (r *BoardReconciler) upsertLocked(note models.Note) {
	if idx := r.indexLocked(note.ID); idx >= 0 {
		r.notes[idx] = note
		return
	}
	r.notes = append(r.notes, note)
}

func (r *BoardReconciler) removeLocked(noteID uuid.UUID) {
	if idx := r.indexLocked(noteID); idx >= 0 {
		r.notes = append(r.notes[:idx], r.notes[idx+1:]...)
	}
}

func applyFields(note *models.Note, fields map[string]interface{}) {
	if text, ok := fields["text"].(string); ok {
		note.Text = text
	}
	if x, ok := fields["x"].(int); ok {
		note.X = x
	}
	if y, ok := fields["y"].(int); ok {
		note.Y = y
	}
	if width, ok := fields["width"].(int); ok {
		note.Width = width
	}
	if height, ok := fields["height"].(int); ok {
		note.Height = height
	}
	if color, ok := fields["color"].(string); ok {
		note.Color = color
	}
}
