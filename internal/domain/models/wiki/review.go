package wiki

import (
	"strings"
	"time"
)

// ReviewStatus is the state of a review request.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// ParseReviewStatus parses a review status case-insensitively.
func ParseReviewStatus(s string) (ReviewStatus, bool) {
	switch status := ReviewStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return status, true
	default:
		return "", false
	}
}

// ReviewRequest asks for an article to be published.
type ReviewRequest struct {
	ID          string       `json:"id" db:"id"`
	ArticleID   string       `json:"article_id" db:"article_id"`
	Status      ReviewStatus `json:"status" db:"status"`
	RequestedBy string       `json:"requested_by" db:"requested_by"`
	RequestedAt time.Time    `json:"requested_at" db:"requested_at"`
	ReviewedBy  *string      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty" db:"reviewed_at"`
	Reason      *string      `json:"reason,omitempty" db:"reason"`
}

// ReviewDetail is a review request with the article fields reviewers need.
type ReviewDetail struct {
	ReviewRequest
	SpaceKey      string        `json:"space_key"`
	ArticleSlug   string        `json:"article_slug"`
	ArticleStatus ArticleStatus `json:"article_status"`
}
