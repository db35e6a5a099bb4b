// Package services implements the high-level operations of the annotation
// store on top of the repositories. Services translate absent rows into
// common.ErrNotFound; repositories stay nil-on-missing.
package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/filex"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/repositories/users"
	"github.com/annoti/annoti/internal/settings"
	"github.com/annoti/annoti/internal/storage"
	"github.com/annoti/annoti/internal/timex"
	"github.com/google/uuid"
)

var (
	nameAdjectives = []string{
		"quiet", "brave", "clever", "gentle", "swift",
		"bright", "calm", "eager", "merry", "wise",
	}
	nameNouns = []string{
		"otter", "falcon", "willow", "badger", "heron",
		"maple", "lynx", "cedar", "wren", "fox",
	}
)

type UserService interface {
	// Current returns the primary user, creating it on first call with the
	// configured name.
	Current(ctx context.Context) (*models.User, error)

	// Rename changes the primary user's display name and mirrors it into
	// the settings file.
	Rename(ctx context.Context, name string) (*models.User, error)

	// RandomName generates an adjective-noun-number display name.
	RandomName() string
}

type userService struct {
	store       *storage.Store
	defaultName string
	dataDir     string
}

func NewUserService(store *storage.Store, defaultName, dataDir string) UserService {
	return &userService{store: store, defaultName: defaultName, dataDir: dataDir}
}

func (s *userService) Current(ctx context.Context) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, s.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		existing, err := repo.GetFirst(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			user = existing
			return nil
		}

		name := s.defaultName
		if name == "" {
			name = s.RandomName()
		}
		user = &models.User{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: timex.NowMillis(),
		}
		return repo.Insert(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}
	return user, nil
}

func (s *userService) Rename(ctx context.Context, name string) (*models.User, error) {
	user, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Users.UpdateName(ctx, user.ID, name); err != nil {
		return nil, fmt.Errorf("failed to rename user: %w", err)
	}
	user.Name = name

	// Mirror the identity into settings.json so external tooling sees the
	// same name without opening the database.
	path := filex.SettingsPath(s.dataDir)
	rec, err := settings.Load(path)
	if err != nil {
		return nil, err
	}
	rec.User.ID = user.ID
	rec.User.Name = user.Name
	if err := settings.Save(path, rec); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) RandomName() string {
	adj := nameAdjectives[rand.Intn(len(nameAdjectives))]
	noun := nameNouns[rand.Intn(len(nameNouns))]
	return fmt.Sprintf("%s-%s-%d", adj, noun, 1000+rand.Intn(9000))
}
