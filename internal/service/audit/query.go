package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wikiflow/internal/config"
	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	auditRepo "wikiflow/internal/domain/repositories/audit"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/domain/services"

	"github.com/google/uuid"
)

// queryService implements the AuditQueryService interface
type queryService struct {
	eventRepo auditRepo.EventRepository
	spaceRepo wikiRepo.SpaceRepository
	logger    *slog.Logger
}

// NewQueryService creates a new audit query service
func NewQueryService(eventRepo auditRepo.EventRepository, spaceRepo wikiRepo.SpaceRepository, logger *slog.Logger) services.AuditQueryService {
	return &queryService{
		eventRepo: eventRepo,
		spaceRepo: spaceRepo,
		logger:    logger,
	}
}

// Search filters the audit trail, newest first
func (s *queryService) Search(ctx context.Context, caller models.Caller, req *services.AuditSearchRequest) (*models.Page[audit.Event], error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.search(ctx, caller, filter, req.Page)
}

// SpaceActivity returns the events of one space, newest first
func (s *queryService) SpaceActivity(ctx context.Context, caller models.Caller, spaceKey string, page models.PageRequest) (*models.Page[audit.Event], error) {
	space, err := s.spaceRepo.GetByKey(ctx, strings.TrimSpace(spaceKey))
	if err != nil {
		return nil, err
	}
	return s.search(ctx, caller, &audit.Filter{SpaceKey: space.Key}, page)
}

func (s *queryService) search(ctx context.Context, caller models.Caller, filter *audit.Filter, page models.PageRequest) (*models.Page[audit.Event], error) {
	filter.PublicOnly = wiki.NewVisibility(caller, false).PublicEventsOnly()

	page.ApplyDefaults(config.DefaultAuditPageSize)
	filter.Limit = page.Size
	filter.Offset = page.Offset()

	events, total, err := s.eventRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return models.NewPage(events, total, page), nil
}

// buildFilter parses the client request into a Filter
func buildFilter(req *services.AuditSearchRequest) (*audit.Filter, error) {
	f := &audit.Filter{
		SpaceKey:  strings.TrimSpace(req.SpaceKey),
		ArticleID: strings.TrimSpace(req.ArticleID),
		ActorID:   strings.TrimSpace(req.ActorID),
		Actor:     strings.TrimSpace(req.Actor),
		EntityID:  strings.TrimSpace(req.EntityID),
	}

	var err error
	if f.ArticleID, err = parseID("article_id", f.ArticleID); err != nil {
		return nil, err
	}
	if f.ActorID, err = parseID("actor_id", f.ActorID); err != nil {
		return nil, err
	}

	if req.EventType != "" {
		t, ok := audit.ParseEventType(req.EventType)
		if !ok {
			return nil, fmt.Errorf("unknown event type %q", req.EventType)
		}
		f.EventType = t
	}
	if req.EntityType != "" {
		t, ok := audit.ParseEntityType(req.EntityType)
		if !ok {
			return nil, fmt.Errorf("unknown entity type %q", req.EntityType)
		}
		f.EntityType = t
	}

	if f.From, err = parseTime("from", req.From); err != nil {
		return nil, err
	}
	if f.To, err = parseTime("to", req.To); err != nil {
		return nil, err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, fmt.Errorf("from must not be after to")
	}

	return f, nil
}

// parseID canonicalizes an optional UUID filter value
func parseID(field, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%s must be a UUID", field)
	}
	return id.String(), nil
}

func parseTime(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be an RFC 3339 timestamp", field)
	}
	return &t, nil
}
