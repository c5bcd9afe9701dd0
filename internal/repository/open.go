// Package repository opens the configured storage backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"wikiflow/internal/config"
	"wikiflow/internal/domain/repositories"
	"wikiflow/internal/repository/memory"
	"wikiflow/internal/repository/postgres"
	postgresAudit "wikiflow/internal/repository/postgres/audit"
	postgresWiki "wikiflow/internal/repository/postgres/wiki"
)

// Backend is an opened storage backend
type Backend struct {
	Repos *repositories.Set

	// Pool is nil for the memory backend
	Pool   *pgxpool.Pool
	Tables *postgres.TableNames
}

// Ping checks the database; the memory backend is always up
func (b *Backend) Ping(ctx context.Context) error {
	if b.Pool == nil {
		return nil
	}
	return b.Pool.Ping(ctx)
}

// Close releases the connection pool
func (b *Backend) Close() {
	if b.Pool != nil {
		b.Pool.Close()
	}
}

// Open connects the backend selected by cfg.StorageBackend. With AutoMigrate
// set, the Postgres schema is created before returning.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	if cfg.StorageBackend == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on exit")
		return &Backend{Repos: memory.NewSet(memory.NewStore())}, nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			pool.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		logger.Info("schema ensured", "table_prefix", cfg.TablePrefix)
	}

	return &Backend{
		Repos:  NewPostgresSet(pool, tables, logger),
		Pool:   pool,
		Tables: tables,
	}, nil
}

// NewPostgresSet builds every Postgres repository over pool
func NewPostgresSet(pool *pgxpool.Pool, tables *postgres.TableNames, logger *slog.Logger) *repositories.Set {
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return &repositories.Set{
		Spaces:   postgresWiki.NewSpaceRepository(repoConfig),
		Articles: postgresWiki.NewArticleRepository(repoConfig),
		Versions: postgresWiki.NewVersionRepository(repoConfig),
		Reviews:  postgresWiki.NewReviewRepository(repoConfig),
		Tags:     postgresWiki.NewTagRepository(repoConfig),
		Comments: postgresWiki.NewCommentRepository(repoConfig),
		Users:    postgres.NewUserRepository(repoConfig),
		Events:   postgresAudit.NewEventRepository(repoConfig),
		Tx:       postgres.NewTransactionManager(pool, logger),
	}
}
