package wiki

import "time"

// Tag is a label shared across spaces. Names are unique ignoring case.
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TagSummary is the compact form embedded in article responses.
type TagSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
