package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, role, created_at
		FROM %s
		WHERE username = $1
	`, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Upsert creates the user or updates its role
func (r *PostgresUserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, role, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET role = EXCLUDED.role
		RETURNING id, created_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, user.Username, user.Role, user.CreatedAt).Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
