package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix          string
	Spaces          string
	Users           string
	Articles        string
	ArticleVersions string
	ReviewRequests  string
	Tags            string
	ArticleTags     string
	VersionComments string
	AuditEvents     string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:          prefix,
		Spaces:          fmt.Sprintf("%sspaces", prefix),
		Users:           fmt.Sprintf("%susers", prefix),
		Articles:        fmt.Sprintf("%sarticles", prefix),
		ArticleVersions: fmt.Sprintf("%sarticle_versions", prefix),
		ReviewRequests:  fmt.Sprintf("%sreview_requests", prefix),
		Tags:            fmt.Sprintf("%stags", prefix),
		ArticleTags:     fmt.Sprintf("%sarticle_tags", prefix),
		VersionComments: fmt.Sprintf("%sversion_comments", prefix),
		AuditEvents:     fmt.Sprintf("%saudit_events", prefix),
	}
}

// Index returns a prefixed index name
func (t *TableNames) Index(name string) string {
	return fmt.Sprintf("idx_%s%s", t.Prefix, name)
}

// CreateConnectionPool creates a pgx pool and pings it.
//
// Port 6543 is treated as a PgBouncer transaction pooler, which cannot hold
// prepared statements across transactions. There the pool switches to
// QueryExecModeCacheDescribe unless the URL already sets
// default_query_exec_mode. Table names are interpolated before statements are
// sent, so each prefix gets its own statement cache entries.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	// CacheStatement is the pgx default, so anything else was set explicitly
	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
