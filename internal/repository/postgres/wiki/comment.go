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

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewCommentRepository creates a new version comment repository
func NewCommentRepository(config *postgres.RepositoryConfig) wikiRepo.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *wiki.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (article_id, version_no, body, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.VersionComments)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		comment.ArticleID,
		comment.VersionNo,
		comment.Body,
		comment.CreatedBy,
		comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("version %d of article %s: %w", comment.VersionNo, comment.ArticleID, domain.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListByVersion retrieves comments oldest first
func (r *PostgresCommentRepository) ListByVersion(ctx context.Context, articleID string, versionNo int, page models.PageRequest) ([]wiki.Comment, int, error) {
	total, err := r.CountByVersion(ctx, articleID, versionNo)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, article_id, version_no, body, created_by, created_at
		FROM %s
		WHERE article_id = $1 AND version_no = $2
		ORDER BY created_at, id
		LIMIT $3 OFFSET $4
	`, r.tables.VersionComments)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, articleID, versionNo, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []wiki.Comment{}
	for rows.Next() {
		var c wiki.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.VersionNo, &c.Body, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, total, nil
}

// CountByVersion counts the comments on one version
func (r *PostgresCommentRepository) CountByVersion(ctx context.Context, articleID string, versionNo int) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE article_id = $1 AND version_no = $2`, r.tables.VersionComments)

	var count int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, articleID, versionNo).Scan(&count); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}
