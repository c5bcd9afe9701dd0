package wiki

import (
	"context"
	"fmt"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresArticleRepository implements the ArticleRepository interface
type PostgresArticleRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(config *postgres.RepositoryConfig) wikiRepo.ArticleRepository {
	return &PostgresArticleRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const articleColumns = `a.id, a.space_id, s.space_key, a.slug, a.title, a.status,
	a.current_version_no, a.created_by, a.created_at, a.updated_at`

// from returns the articles-join-spaces clause every read shares
func (r *PostgresArticleRepository) from() string {
	return fmt.Sprintf("%s a JOIN %s s ON s.id = a.space_id", r.tables.Articles, r.tables.Spaces)
}

func scanArticle(row pgx.Row) (*wiki.Article, error) {
	var a wiki.Article
	err := row.Scan(
		&a.ID,
		&a.SpaceID,
		&a.SpaceKey,
		&a.Slug,
		&a.Title,
		&a.Status,
		&a.CurrentVersionNo,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectArticles(rows pgx.Rows) ([]wiki.Article, error) {
	defer rows.Close()

	articles := []wiki.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}

func statusStrings(statuses []wiki.ArticleStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Create creates a new article
func (r *PostgresArticleRepository) Create(ctx context.Context, article *wiki.Article) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (space_id, slug, title, status, current_version_no, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		article.SpaceID,
		article.Slug,
		article.Title,
		article.Status,
		article.CurrentVersionNo,
		article.CreatedBy,
		article.CreatedAt,
		article.UpdatedAt,
	).Scan(&article.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("slug '%s' already exists in space", article.Slug),
				ResourceType: "article",
			}
		}
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("space %s: %w", article.SpaceID, domain.ErrNotFound)
		}
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

// GetByID retrieves an article by ID
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id string) (*wiki.Article, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate retrieves an article and locks its row
func (r *PostgresArticleRepository) GetByIDForUpdate(ctx context.Context, id string) (*wiki.Article, error) {
	return r.getByID(ctx, id, "FOR UPDATE OF a")
}

func (r *PostgresArticleRepository) getByID(ctx context.Context, id, lock string) (*wiki.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE a.id = $1
		%s
	`, articleColumns, r.from(), lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	article, err := scanArticle(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// GetBySlug retrieves an article by slug within a space
func (r *PostgresArticleRepository) GetBySlug(ctx context.Context, spaceID, slug string) (*wiki.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE a.space_id = $1 AND a.slug = $2
	`, articleColumns, r.from())

	executor := postgres.GetExecutor(ctx, r.pool)
	article, err := scanArticle(executor.QueryRow(ctx, query, spaceID, slug))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("article %s: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get article by slug: %w", err)
	}
	return article, nil
}

// ExistsBySlug reports whether the slug is taken in the space
func (r *PostgresArticleRepository) ExistsBySlug(ctx context.Context, spaceID, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE space_id = $1 AND slug = $2)`, r.tables.Articles)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, spaceID, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

// Update writes the mutable article fields
func (r *PostgresArticleRepository) Update(ctx context.Context, article *wiki.Article) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, status = $2, current_version_no = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Articles)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		article.Title,
		article.Status,
		article.CurrentVersionNo,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("article %s: %w", article.ID, domain.ErrNotFound)
	}
	return nil
}

// ListBySpace retrieves articles in the given statuses, most recently updated first
func (r *PostgresArticleRepository) ListBySpace(ctx context.Context, spaceID string, statuses []wiki.ArticleStatus, page models.PageRequest) ([]wiki.Article, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	states := statusStrings(statuses)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE space_id = $1 AND status = ANY($2)`, r.tables.Articles)
	var total int
	if err := executor.QueryRow(ctx, countQuery, spaceID, states).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE a.space_id = $1 AND a.status = ANY($2)
		ORDER BY a.updated_at DESC, a.id
		LIMIT $3 OFFSET $4
	`, articleColumns, r.from())

	rows, err := executor.Query(ctx, query, spaceID, states, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	articles, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// Search matches titles and latest content case-insensitively
func (r *PostgresArticleRepository) Search(ctx context.Context, opts *wiki.SearchOptions) ([]wiki.Article, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	where := fmt.Sprintf(`
		FROM %s
		LEFT JOIN %s v ON v.article_id = a.id AND v.version_no = a.current_version_no
		WHERE a.space_id = $1
		  AND a.status = ANY($2)
		  AND (lower(a.title) LIKE $3 OR lower(COALESCE(v.content, '')) LIKE $3)
	`, r.from(), r.tables.ArticleVersions)
	args := []any{opts.SpaceID, statusStrings(opts.Statuses), opts.LikePattern()}

	var total int
	if err := executor.QueryRow(ctx, "SELECT COUNT(*) "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s ORDER BY a.updated_at DESC, a.id LIMIT $4 OFFSET $5`, articleColumns, where)
	rows, err := executor.Query(ctx, query, append(args, opts.Limit, opts.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search articles: %w", err)
	}
	articles, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}
