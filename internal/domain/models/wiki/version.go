package wiki

import "time"

// ArticleVersion is an immutable content snapshot. VersionNo starts at 1.
type ArticleVersion struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	VersionNo int       `json:"version_no" db:"version_no"`
	Content   string    `json:"content" db:"content"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
