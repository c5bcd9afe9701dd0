package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Constraint names the repositories translate into domain errors
const (
	constraintSpaceKey      = "space_key_unique"
	constraintArticleSlug   = "article_slug_unique"
	constraintVersionNo     = "version_no_unique"
	constraintPendingReview = "review_pending_unique"
	constraintTagName       = "tag_name_unique"
)

// EnsureSchema creates every table and index if they don't exist
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Spaces + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			space_key TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ` + tables.Prefix + constraintSpaceKey + ` UNIQUE (space_key)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			username TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Articles + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			space_id UUID NOT NULL REFERENCES ` + tables.Spaces + `(id) ON DELETE CASCADE,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			current_version_no INTEGER NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ` + tables.Prefix + constraintArticleSlug + ` UNIQUE (space_id, slug)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ArticleVersions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			article_id UUID NOT NULL REFERENCES ` + tables.Articles + `(id) ON DELETE CASCADE,
			version_no INTEGER NOT NULL CHECK (version_no >= 1),
			content TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT ` + tables.Prefix + constraintVersionNo + ` UNIQUE (article_id, version_no)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ReviewRequests + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			article_id UUID NOT NULL REFERENCES ` + tables.Articles + `(id) ON DELETE CASCADE,
			status TEXT NOT NULL,
			requested_by TEXT NOT NULL,
			requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			reviewed_by TEXT,
			reviewed_at TIMESTAMPTZ,
			reason TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Tags + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ArticleTags + ` (
			article_id UUID NOT NULL REFERENCES ` + tables.Articles + `(id) ON DELETE CASCADE,
			tag_id UUID NOT NULL REFERENCES ` + tables.Tags + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (article_id, tag_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.VersionComments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			article_id UUID NOT NULL,
			version_no INTEGER NOT NULL,
			body TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			FOREIGN KEY (article_id, version_no) REFERENCES ` + tables.ArticleVersions + `(article_id, version_no) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AuditEvents + ` (
			id UUID PRIMARY KEY,
			event_type TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			space_key TEXT NOT NULL,
			article_id UUID,
			actor TEXT NOT NULL,
			actor_id UUID,
			message TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			meta_json TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// Partial and expression indexes carry the remaining uniqueness rules
		`CREATE UNIQUE INDEX IF NOT EXISTS ` + tables.Prefix + constraintPendingReview + ` ON ` + tables.ReviewRequests + `(article_id) WHERE status = 'PENDING'`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ` + tables.Prefix + constraintTagName + ` ON ` + tables.Tags + `(lower(name))`,

		`CREATE INDEX IF NOT EXISTS ` + tables.Index("articles_space_status") + ` ON ` + tables.Articles + `(space_id, status, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Index("reviews_status_requested") + ` ON ` + tables.ReviewRequests + `(status, requested_at DESC)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Index("comments_version") + ` ON ` + tables.VersionComments + `(article_id, version_no, created_at)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Index("audit_space_created") + ` ON ` + tables.AuditEvents + `(space_key, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Index("audit_article") + ` ON ` + tables.AuditEvents + `(article_id)`,
		`CREATE INDEX IF NOT EXISTS ` + tables.Index("audit_actor") + ` ON ` + tables.AuditEvents + `(actor)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every table in reverse dependency order
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) ([]string, error) {
	ordered := []string{
		tables.AuditEvents,
		tables.VersionComments,
		tables.ArticleTags,
		tables.Tags,
		tables.ReviewRequests,
		tables.ArticleVersions,
		tables.Articles,
		tables.Users,
		tables.Spaces,
	}

	dropped := make([]string, 0, len(ordered))
	for _, table := range ordered {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return dropped, fmt.Errorf("drop %s: %w", table, err)
		}
		dropped = append(dropped, table)
	}
	return dropped, nil
}
