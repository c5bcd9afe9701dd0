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

// PostgresVersionRepository implements the VersionRepository interface
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *postgres.RepositoryConfig) wikiRepo.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts an immutable version
func (r *PostgresVersionRepository) Create(ctx context.Context, version *wiki.ArticleVersion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (article_id, version_no, content, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, r.tables.ArticleVersions)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		version.ArticleID,
		version.VersionNo,
		version.Content,
		version.CreatedBy,
		version.CreatedAt,
	).Scan(&version.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version %d already exists", version.VersionNo),
				ResourceType: "version",
			}
		}
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("article %s: %w", version.ArticleID, domain.ErrNotFound)
		}
		return fmt.Errorf("create version: %w", err)
	}
	return nil
}

// MaxVersionNo returns the highest stored version number, 0 when there is none
func (r *PostgresVersionRepository) MaxVersionNo(ctx context.Context, articleID string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(version_no), 0) FROM %s WHERE article_id = $1`, r.tables.ArticleVersions)

	var maxNo int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, articleID).Scan(&maxNo); err != nil {
		return 0, fmt.Errorf("max version: %w", err)
	}
	return maxNo, nil
}

// GetByNumber retrieves one version of an article
func (r *PostgresVersionRepository) GetByNumber(ctx context.Context, articleID string, versionNo int) (*wiki.ArticleVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, article_id, version_no, content, created_by, created_at
		FROM %s
		WHERE article_id = $1 AND version_no = $2
	`, r.tables.ArticleVersions)

	var v wiki.ArticleVersion
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, articleID, versionNo).Scan(
		&v.ID,
		&v.ArticleID,
		&v.VersionNo,
		&v.Content,
		&v.CreatedBy,
		&v.CreatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("version %d of article %s: %w", versionNo, articleID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version: %w", err)
	}
	return &v, nil
}

// ListByArticle retrieves versions oldest first. maxVersionNo <= 0 means no cap.
func (r *PostgresVersionRepository) ListByArticle(ctx context.Context, articleID string, maxVersionNo int, page models.PageRequest) ([]wiki.ArticleVersion, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	filter := `article_id = $1 AND ($2 <= 0 OR version_no <= $2)`

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.ArticleVersions, filter)
	if err := executor.QueryRow(ctx, countQuery, articleID, maxVersionNo).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count versions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, article_id, version_no, content, created_by, created_at
		FROM %s
		WHERE %s
		ORDER BY version_no
		LIMIT $3 OFFSET $4
	`, r.tables.ArticleVersions, filter)

	rows, err := executor.Query(ctx, query, articleID, maxVersionNo, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	versions := []wiki.ArticleVersion{}
	for rows.Next() {
		var v wiki.ArticleVersion
		if err := rows.Scan(&v.ID, &v.ArticleID, &v.VersionNo, &v.Content, &v.CreatedBy, &v.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate versions: %w", err)
	}
	return versions, total, nil
}
