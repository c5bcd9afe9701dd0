package wiki

import (
	"strings"
	"time"
)

// ArticleStatus is the lifecycle state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusInReview  ArticleStatus = "IN_REVIEW"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// AllStatuses lists every lifecycle state.
var AllStatuses = []ArticleStatus{StatusDraft, StatusInReview, StatusPublished, StatusArchived}

// ParseArticleStatus parses a status case-insensitively.
func ParseArticleStatus(s string) (ArticleStatus, bool) {
	status := ArticleStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// Article is the unit of content. Slug never changes after creation.
type Article struct {
	ID               string        `json:"id" db:"id"`
	SpaceID          string        `json:"space_id" db:"space_id"`
	SpaceKey         string        `json:"space_key" db:"space_key"`
	Slug             string        `json:"slug" db:"slug"`
	Title            string        `json:"title" db:"title"`
	Status           ArticleStatus `json:"status" db:"status"`
	CurrentVersionNo int           `json:"current_version_no" db:"current_version_no"`
	CreatedBy        string        `json:"created_by" db:"created_by"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// ArticleDetail is an article with its latest content and derived counts.
type ArticleDetail struct {
	Article
	Content      *string      `json:"content"`
	Tags         []TagSummary `json:"tags"`
	CommentCount int          `json:"comment_count"`
}
