package validators

import (
	"encoding/json"
	"math"

	"boardSync/internal/models"
)

const (
	NoteDefaultX      = 100
	NoteDefaultY      = 100
	NoteDefaultWidth  = 180
	NoteDefaultHeight = 120
	NoteMinWidth      = 100
	NoteMinHeight     = 60
	NoteDefaultColor  = "#fef3c7"
)

// NormalizeNoteCreate turns an arbitrary client payload into fully
// defaulted, range-checked note fields. Malformed fields fall back to
// defaults instead of rejecting the request; storage stays consistent no
// matter how stale or hostile the sender is.
func NormalizeNoteCreate(payload map[string]interface{}) models.Note {
	note := models.Note{
		Text:   "",
		X:      NoteDefaultX,
		Y:      NoteDefaultY,
		Width:  NoteDefaultWidth,
		Height: NoteDefaultHeight,
		Color:  NoteDefaultColor,
	}
	if text, ok := asString(payload["text"]); ok {
		note.Text = text
	}
	if x, ok := asFinite(payload["x"]); ok {
		note.X = roundToInt(x)
	}
	if y, ok := asFinite(payload["y"]); ok {
		note.Y = roundToInt(y)
	}
	if color, ok := asString(payload["color"]); ok {
		note.Color = color
	}
	if width, ok := asFinite(payload["width"]); ok {
		note.Width = clampMin(roundToInt(width), NoteMinWidth)
	}
	if height, ok := asFinite(payload["height"]); ok {
		note.Height = clampMin(roundToInt(height), NoteMinHeight)
	}
	return note
}

// NormalizeNotePatch keeps only the recognized, well-typed fields of a
// partial update, with the same rounding and clamping as creation. The
// result maps column name to value; empty means nothing to update.
func NormalizeNotePatch(patch map[string]interface{}) map[string]interface{} {
	fields := make(map[string]interface{})
	if text, ok := asString(patch["text"]); ok {
		fields["text"] = text
	}
	if x, ok := asFinite(patch["x"]); ok {
		fields["x"] = roundToInt(x)
	}
	if y, ok := asFinite(patch["y"]); ok {
		fields["y"] = roundToInt(y)
	}
	if width, ok := asFinite(patch["width"]); ok {
		fields["width"] = clampMin(roundToInt(width), NoteMinWidth)
	}
	if height, ok := asFinite(patch["height"]); ok {
		fields["height"] = clampMin(roundToInt(height), NoteMinHeight)
	}
	if color, ok := asString(patch["color"]); ok {
		fields["color"] = color
	}
	return fields
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asFinite accepts the numeric shapes a decoded JSON payload can carry.
func asFinite(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func roundToInt(f float64) int {
	return int(math.Round(f))
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
