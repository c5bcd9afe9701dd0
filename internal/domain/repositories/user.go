package repositories

import (
	"context"

	"wikiflow/internal/domain/models"
)

// UserRepository looks up known accounts
type UserRepository interface {
	// GetByUsername returns domain.ErrNotFound when the user is unknown
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Upsert creates the user or updates its role, filling in ID
	Upsert(ctx context.Context, user *models.User) error
}
