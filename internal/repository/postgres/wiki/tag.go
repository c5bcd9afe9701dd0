package wiki

import (
	"context"
	"fmt"
	"strings"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *postgres.RepositoryConfig) wikiRepo.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new tag
func (r *PostgresTagRepository) Create(ctx context.Context, tag *wiki.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, created_at)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, tag.Name, tag.CreatedAt).Scan(&tag.ID, &tag.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			conflict := &domain.ConflictError{
				Message:      fmt.Sprintf("tag '%s' already exists", tag.Name),
				ResourceType: "tag",
			}
			lookup := fmt.Sprintf(`SELECT id FROM %s WHERE lower(name) = lower($1)`, r.tables.Tags)
			var existingID string
			if postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, lookup, tag.Name).Scan(&existingID) == nil {
				conflict.ResourceID = existingID
			}
			return conflict
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// GetByID retrieves a tag by ID
func (r *PostgresTagRepository) GetByID(ctx context.Context, id string) (*wiki.Tag, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, r.tables.Tags)

	var tag wiki.Tag
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &tag, nil
}

// List retrieves tags ordered by name
func (r *PostgresTagRepository) List(ctx context.Context, page models.PageRequest) ([]wiki.Tag, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	var total int
	if err := executor.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Tags)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tags: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, created_at
		FROM %s
		ORDER BY lower(name)
		LIMIT $1 OFFSET $2
	`, r.tables.Tags)

	rows, err := executor.Query(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []wiki.Tag{}
	for rows.Next() {
		var tag wiki.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, total, nil
}

// Attach links a tag to an article
func (r *PostgresTagRepository) Attach(ctx context.Context, articleID, tagID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (article_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (article_id, tag_id) DO NOTHING
	`, r.tables.ArticleTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, articleID, tagID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			if strings.HasSuffix(postgres.ViolatedConstraint(err), "_article_id_fkey") {
				return false, fmt.Errorf("article %s: %w", articleID, domain.ErrNotFound)
			}
			return false, fmt.Errorf("tag %s: %w", tagID, domain.ErrNotFound)
		}
		return false, fmt.Errorf("attach tag: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Detach removes a tag from an article
func (r *PostgresTagRepository) Detach(ctx context.Context, articleID, tagID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE article_id = $1 AND tag_id = $2`, r.tables.ArticleTags)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, articleID, tagID)
	if err != nil {
		return false, fmt.Errorf("detach tag: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListByArticle retrieves an article's tags ordered by name
func (r *PostgresTagRepository) ListByArticle(ctx context.Context, articleID string) ([]wiki.TagSummary, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.name
		FROM %s at JOIN %s t ON t.id = at.tag_id
		WHERE at.article_id = $1
		ORDER BY lower(t.name)
	`, r.tables.ArticleTags, r.tables.Tags)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("list article tags: %w", err)
	}
	defer rows.Close()

	tags := []wiki.TagSummary{}
	for rows.Next() {
		var tag wiki.TagSummary
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan article tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article tags: %w", err)
	}
	return tags, nil
}
