package memory

import (
	"context"
	"fmt"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/repositories"

	"github.com/google/uuid"
)

// UserRepository implements repositories.UserRepository in memory
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var found *models.User
	err := r.store.do(ctx, func(d *dataset) error {
		u, ok := d.users[username]
		if !ok {
			return fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
		}
		found = &u
		return nil
	})
	return found, err
}

func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	return r.store.do(ctx, func(d *dataset) error {
		if existing, ok := d.users[user.Username]; ok {
			user.ID = existing.ID
			user.CreatedAt = existing.CreatedAt
		} else if user.ID == "" {
			user.ID = uuid.NewString()
		}
		d.users[user.Username] = *user
		return nil
	})
}
