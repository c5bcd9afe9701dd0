package wiki

import (
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
)

// articleEvent builds an audit event scoped to an article. entityType and
// entityID default to the article itself when empty.
func articleEvent(
	eventType audit.EventType,
	caller models.Caller,
	article *wiki.Article,
	entityType audit.EntityType,
	entityID string,
	public bool,
	message string,
	meta map[string]any,
) audit.Event {
	if entityType == "" {
		entityType = audit.EntityArticle
		entityID = article.ID
	}
	articleID := article.ID
	return audit.Event{
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		SpaceKey:   article.SpaceKey,
		ArticleID:  &articleID,
		Actor:      caller.Actor(),
		Message:    message,
		IsPublic:   public,
		Metadata:   meta,
	}
}
