package audit

import (
	"context"
	"fmt"
	"strings"

	"wikiflow/internal/domain/models/audit"
	auditRepo "wikiflow/internal/domain/repositories/audit"
	"wikiflow/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresEventRepository implements the EventRepository interface
type PostgresEventRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewEventRepository creates a new audit event repository
func NewEventRepository(config *postgres.RepositoryConfig) auditRepo.EventRepository {
	return &PostgresEventRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create appends an event
func (r *PostgresEventRepository) Create(ctx context.Context, event *audit.Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, event_type, entity_type, entity_id, space_key, article_id,
			actor, actor_id, message, is_public, meta_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.AuditEvents)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.EntityType,
		event.EntityID,
		event.SpaceKey,
		event.ArticleID,
		event.Actor,
		event.ActorID,
		event.Message,
		event.IsPublic,
		event.MetaJSON,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create audit event: %w", err)
	}
	return nil
}

// whereClause builds the WHERE conditions for filter with numbered args
func whereClause(filter *audit.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.SpaceKey != "" {
		add("space_key = $%d", filter.SpaceKey)
	}
	if filter.ArticleID != "" {
		add("article_id = $%d", filter.ArticleID)
	}
	if filter.ActorID != "" {
		add("actor_id = $%d", filter.ActorID)
	}
	if filter.Actor != "" {
		add("actor = $%d", filter.Actor)
	}
	if filter.EventType != "" {
		add("event_type = $%d", string(filter.EventType))
	}
	if filter.EntityType != "" {
		add("entity_type = $%d", string(filter.EntityType))
	}
	if filter.EntityID != "" {
		add("entity_id = $%d", filter.EntityID)
	}
	if filter.PublicOnly {
		conds = append(conds, "is_public")
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// Search retrieves matching events newest first
func (r *PostgresEventRepository) Search(ctx context.Context, filter *audit.Filter) ([]audit.Event, int, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	where, args := whereClause(filter)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, r.tables.AuditEvents, where)
	if err := executor.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, event_type, entity_type, entity_id, space_key, article_id,
			actor, actor_id, message, is_public, meta_json, created_at
		FROM %s
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, r.tables.AuditEvents, where, len(args)+1, len(args)+2)

	rows, err := executor.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("search audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var e audit.Event
		err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.EntityType,
			&e.EntityID,
			&e.SpaceKey,
			&e.ArticleID,
			&e.Actor,
			&e.ActorID,
			&e.Message,
			&e.IsPublic,
			&e.MetaJSON,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, total, nil
}
