package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetFirst(ctx context.Context) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM users LIMIT 1`)

	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM users WHERE name = ? LIMIT 1`, name)

	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user %q: %w", name, err)
	}
	return u, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateName(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to update user name: %w", err)
	}
	return nil
}
