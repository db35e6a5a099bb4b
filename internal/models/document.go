package models

// Document is an annotated file registered in the store. Path is the natural
// key: re-saving the same path updates the row in place, preserving ID and
// CreatedAt. Checksum is always the SHA-256 hex digest of Content and is
// recomputed on every content write.
type Document struct {
	ID           string `json:"id"`
	Path         string `json:"path"`
	Content      string `json:"content"`
	Checksum     string `json:"checksum"`
	LastModified int64  `json:"last_modified"`
	CreatedAt    int64  `json:"created_at"`
}
