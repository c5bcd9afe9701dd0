package wiki

import "time"

// Comment is a note left on a specific article version.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	VersionNo int       `json:"version_no" db:"version_no"`
	Body      string    `json:"body" db:"body"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
