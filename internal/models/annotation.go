package models

// Default presentation style applied when an annotation predates styled
// highlights (legacy sidecar records).
const (
	DefaultHighlightColor = "#ffd700"
	DefaultHighlightType  = "underline"
)

// Annotation is a highlight plus optional sticky note anchored to a document.
//
// Text is the anchored excerpt; it is set once at creation, never mutated by
// updates, and serves as the dedup key when merging imported packages.
// AnchorData is an opaque serialized payload locating Text within the
// document content; the store round-trips it verbatim and never parses it.
// UserID/UserName are a denormalized snapshot of the authoring user taken at
// creation time.
type Annotation struct {
	ID             string  `json:"id"`
	DocumentID     string  `json:"document_id"`
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	Text           string  `json:"text" validate:"required"`
	Note           *string `json:"note"`
	NoteVisible    bool    `json:"note_visible"`
	NotePositionX  float64 `json:"note_position_x"`
	NotePositionY  float64 `json:"note_position_y"`
	NoteWidth      float64 `json:"note_width"`
	NoteHeight     float64 `json:"note_height"`
	HighlightColor string  `json:"highlight_color"`
	HighlightType  string  `json:"highlight_type"`
	AnchorData     string  `json:"anchor_data"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}
