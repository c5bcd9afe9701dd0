package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/repositories"
	"wikiflow/internal/domain/services"
)

// UserActorResolver resolves audit actor ids from the users table
type UserActorResolver struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserActorResolver creates a new users-table actor resolver
func NewUserActorResolver(userRepo repositories.UserRepository, logger *slog.Logger) services.ActorIDResolver {
	return &UserActorResolver{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Resolve returns the id of username. Blank, system and unknown actors resolve to nothing.
func (r *UserActorResolver) Resolve(ctx context.Context, username string) (string, bool) {
	username = strings.TrimSpace(username)
	if username == "" || username == models.SystemActor {
		return "", false
	}

	user, err := r.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("actor lookup failed", "actor", username, "error", err)
		}
		return "", false
	}
	return user.ID, true
}
