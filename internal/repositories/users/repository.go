package users

import (
	"context"

	"github.com/annoti/annoti/internal/models"
)

// Repository describes persistence operations for User rows.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// GetFirst returns the first user row in the store, or nil if the store
	// has no users yet.
	GetFirst(ctx context.Context) (*models.User, error)

	// GetByName returns the first user with the given name, or nil if absent.
	GetByName(ctx context.Context, name string) (*models.User, error)

	// Insert adds a fully-specified user row.
	Insert(ctx context.Context, user *models.User) error

	// UpdateName changes the display name of an existing user.
	UpdateName(ctx context.Context, id, name string) error
}
