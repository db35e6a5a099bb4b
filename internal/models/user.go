// Package models defines the persisted record types of the annotation store
// and their wire (JSON) shapes.
package models

// User is an annotation author. A store normally holds exactly one primary
// user; additional synthetic users (such as the sidecar-migration owner) may
// exist alongside it.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}
