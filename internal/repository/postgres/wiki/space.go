package wiki

import (
	"context"
	"fmt"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSpaceRepository implements the SpaceRepository interface
type PostgresSpaceRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSpaceRepository creates a new space repository
func NewSpaceRepository(config *postgres.RepositoryConfig) wikiRepo.SpaceRepository {
	return &PostgresSpaceRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new space
func (r *PostgresSpaceRepository) Create(ctx context.Context, space *wiki.Space) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (space_key, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.Spaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, space.Key, space.Name, space.CreatedAt).
		Scan(&space.ID, &space.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			conflict := &domain.ConflictError{
				Message:      fmt.Sprintf("space '%s' already exists", space.Key),
				ResourceType: "space",
			}
			if existing, getErr := r.GetByKey(ctx, space.Key); getErr == nil {
				conflict.ResourceID = existing.ID
			}
			return conflict
		}
		return fmt.Errorf("create space: %w", err)
	}

	return nil
}

// GetByKey retrieves a space by its key
func (r *PostgresSpaceRepository) GetByKey(ctx context.Context, key string) (*wiki.Space, error) {
	query := fmt.Sprintf(`
		SELECT id, space_key, name, created_at
		FROM %s
		WHERE space_key = $1
	`, r.tables.Spaces)

	var space wiki.Space
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, key).Scan(
		&space.ID,
		&space.Key,
		&space.Name,
		&space.CreatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("space %s: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get space: %w", err)
	}

	return &space, nil
}

// List retrieves spaces ordered by key
func (r *PostgresSpaceRepository) List(ctx context.Context, page models.PageRequest) ([]wiki.Space, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	var total int
	if err := executor.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Spaces)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count spaces: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, space_key, name, created_at
		FROM %s
		ORDER BY space_key
		LIMIT $1 OFFSET $2
	`, r.tables.Spaces)

	rows, err := executor.Query(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	spaces := []wiki.Space{}
	for rows.Next() {
		var space wiki.Space
		if err := rows.Scan(&space.ID, &space.Key, &space.Name, &space.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan space: %w", err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate spaces: %w", err)
	}

	return spaces, total, nil
}
