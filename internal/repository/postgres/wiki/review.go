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

// PostgresReviewRepository implements the ReviewRepository interface
type PostgresReviewRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewReviewRepository creates a new review request repository
func NewReviewRepository(config *postgres.RepositoryConfig) wikiRepo.ReviewRepository {
	return &PostgresReviewRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const reviewColumns = `id, article_id, status, requested_by, requested_at, reviewed_by, reviewed_at, reason`

func scanReview(row pgx.Row) (*wiki.ReviewRequest, error) {
	var rr wiki.ReviewRequest
	err := row.Scan(
		&rr.ID,
		&rr.ArticleID,
		&rr.Status,
		&rr.RequestedBy,
		&rr.RequestedAt,
		&rr.ReviewedBy,
		&rr.ReviewedAt,
		&rr.Reason,
	)
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// Create inserts a review request. The partial unique index allows one
// PENDING request per article.
func (r *PostgresReviewRepository) Create(ctx context.Context, review *wiki.ReviewRequest) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (article_id, status, requested_by, requested_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, r.tables.ReviewRequests)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		review.ArticleID,
		review.Status,
		review.RequestedBy,
		review.RequestedAt,
	).Scan(&review.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      "pending review request already exists",
				ResourceType: "review_request",
			}
		}
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("article %s: %w", review.ArticleID, domain.ErrNotFound)
		}
		return fmt.Errorf("create review request: %w", err)
	}
	return nil
}

// GetByID retrieves a review request by ID
func (r *PostgresReviewRepository) GetByID(ctx context.Context, id string) (*wiki.ReviewRequest, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate retrieves a review request and locks its row
func (r *PostgresReviewRepository) GetByIDForUpdate(ctx context.Context, id string) (*wiki.ReviewRequest, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *PostgresReviewRepository) getByID(ctx context.Context, id, lock string) (*wiki.ReviewRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 %s`, reviewColumns, r.tables.ReviewRequests, lock)

	executor := postgres.GetExecutor(ctx, r.pool)
	rr, err := scanReview(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("review request %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get review request: %w", err)
	}
	return rr, nil
}

// ExistsPending reports whether the article has an open review request
func (r *PostgresReviewRepository) ExistsPending(ctx context.Context, articleID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE article_id = $1 AND status = $2)`, r.tables.ReviewRequests)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, articleID, wiki.ReviewPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending review: %w", err)
	}
	return exists, nil
}

// Update writes the decision fields
func (r *PostgresReviewRepository) Update(ctx context.Context, review *wiki.ReviewRequest) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, reviewed_by = $2, reviewed_at = $3, reason = $4
		WHERE id = $5
	`, r.tables.ReviewRequests)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		review.Status,
		review.ReviewedBy,
		review.ReviewedAt,
		review.Reason,
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("update review request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review request %s: %w", review.ID, domain.ErrNotFound)
	}
	return nil
}

// List retrieves review requests newest first, optionally by status
func (r *PostgresReviewRepository) List(ctx context.Context, status *wiki.ReviewStatus, page models.PageRequest) ([]wiki.ReviewRequest, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	filter := `($1::text IS NULL OR status = $1)`

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.ReviewRequests, filter)
	if err := executor.QueryRow(ctx, countQuery, statusArg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count review requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY requested_at DESC, id
		LIMIT $2 OFFSET $3
	`, reviewColumns, r.tables.ReviewRequests, filter)

	rows, err := executor.Query(ctx, query, statusArg, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list review requests: %w", err)
	}
	defer rows.Close()

	reviews := []wiki.ReviewRequest{}
	for rows.Next() {
		rr, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review request: %w", err)
		}
		reviews = append(reviews, *rr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review requests: %w", err)
	}
	return reviews, total, nil
}
