package services

import (
	"context"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
)

// AuditRecorder accepts audit events after the mutation that produced them
// has committed. Record must not block and never reports failure.
type AuditRecorder interface {
	Record(event audit.Event)
}

// AuditQueryService reads the audit trail
type AuditQueryService interface {
	// Search returns matching events newest first; restricted callers only see public events
	Search(ctx context.Context, caller models.Caller, req *AuditSearchRequest) (*models.Page[audit.Event], error)

	// SpaceActivity is the activity feed of one space
	SpaceActivity(ctx context.Context, caller models.Caller, spaceKey string, page models.PageRequest) (*models.Page[audit.Event], error)
}

// AuditSearchRequest holds optional audit filters as received from a client
type AuditSearchRequest struct {
	SpaceKey   string `json:"space_key"`
	ArticleID  string `json:"article_id"`
	ActorID    string `json:"actor_id"`
	Actor      string `json:"actor"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	From       string `json:"from"` // RFC 3339
	To         string `json:"to"`   // RFC 3339
	Page       models.PageRequest
}
