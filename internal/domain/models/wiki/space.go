package wiki

import "time"

// Space groups articles under a short immutable key.
type Space struct {
	ID        string    `json:"id" db:"id"`
	Key       string    `json:"space_key" db:"space_key"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
