package audit

import (
	"strings"
	"time"
)

// EventType names what happened.
type EventType string

const (
	SpaceCreated          EventType = "SPACE_CREATED"
	ArticleCreated        EventType = "ARTICLE_CREATED"
	ArticleTitleUpdated   EventType = "ARTICLE_TITLE_UPDATED"
	ArticleArchived       EventType = "ARTICLE_ARCHIVED"
	ArticleUnarchived     EventType = "ARTICLE_UNARCHIVED"
	VersionAdded          EventType = "VERSION_ADDED"
	ReviewSubmitted       EventType = "REVIEW_SUBMITTED"
	ReviewApproved        EventType = "REVIEW_APPROVED"
	ReviewRejected        EventType = "REVIEW_REJECTED"
	CommentAdded          EventType = "COMMENT_ADDED"
	TagAddedToArticle     EventType = "TAG_ADDED_TO_ARTICLE"
	TagRemovedFromArticle EventType = "TAG_REMOVED_FROM_ARTICLE"
)

// EntityType names the kind of record an event is about.
type EntityType string

const (
	EntitySpace         EntityType = "SPACE"
	EntityArticle       EntityType = "ARTICLE"
	EntityVersion       EntityType = "VERSION"
	EntityReviewRequest EntityType = "REVIEW_REQUEST"
	EntityComment       EntityType = "COMMENT"
	EntityTag           EntityType = "TAG"
)

// ParseEventType parses an event type case-insensitively.
func ParseEventType(s string) (EventType, bool) {
	t := EventType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case SpaceCreated, ArticleCreated, ArticleTitleUpdated, ArticleArchived, ArticleUnarchived,
		VersionAdded, ReviewSubmitted, ReviewApproved, ReviewRejected, CommentAdded,
		TagAddedToArticle, TagRemovedFromArticle:
		return t, true
	}
	return "", false
}

// ParseEntityType parses an entity type case-insensitively.
func ParseEntityType(s string) (EntityType, bool) {
	t := EntityType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case EntitySpace, EntityArticle, EntityVersion, EntityReviewRequest, EntityComment, EntityTag:
		return t, true
	}
	return "", false
}

// Event is one append-only audit record.
//
// Metadata is the structured input supplied by the emitting service; the
// recorder serializes it into MetaJSON before storage. MetaJSON stays nil
// when there is no metadata or it cannot be encoded.
type Event struct {
	ID         string         `json:"id"`
	EventType  EventType      `json:"event_type"`
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	SpaceKey   string         `json:"space_key"`
	ArticleID  *string        `json:"article_id,omitempty"`
	Actor      string         `json:"actor"`
	ActorID    *string        `json:"actor_id,omitempty"`
	Message    string         `json:"message"`
	IsPublic   bool           `json:"is_public"`
	Metadata   map[string]any `json:"-"`
	MetaJSON   *string        `json:"meta_json,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Filter selects audit events. Nil or empty fields are ignored.
type Filter struct {
	SpaceKey   string
	ArticleID  string
	ActorID    string
	Actor      string
	EventType  EventType
	EntityType EntityType
	EntityID   string
	PublicOnly bool
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Matches reports whether e satisfies every set field of f.
func (f *Filter) Matches(e *Event) bool {
	switch {
	case f.SpaceKey != "" && e.SpaceKey != f.SpaceKey:
		return false
	case f.ArticleID != "" && (e.ArticleID == nil || *e.ArticleID != f.ArticleID):
		return false
	case f.ActorID != "" && (e.ActorID == nil || *e.ActorID != f.ActorID):
		return false
	case f.Actor != "" && e.Actor != f.Actor:
		return false
	case f.EventType != "" && e.EventType != f.EventType:
		return false
	case f.EntityType != "" && e.EntityType != f.EntityType:
		return false
	case f.EntityID != "" && e.EntityID != f.EntityID:
		return false
	case f.PublicOnly && !e.IsPublic:
		return false
	case f.From != nil && e.CreatedAt.Before(*f.From):
		return false
	case f.To != nil && e.CreatedAt.After(*f.To):
		return false
	}
	return true
}
