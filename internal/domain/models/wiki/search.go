package wiki

import (
	"fmt"
	"strings"
)

// Default search configuration values
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// SearchOptions configures an article search within one space.
type SearchOptions struct {
	// Query is matched case-insensitively as a substring of the title or
	// the latest version's content
	Query string

	SpaceID string

	// Statuses restricts matches; always set from a Visibility
	Statuses []ArticleStatus

	Limit  int
	Offset int
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	opts.Query = strings.TrimSpace(opts.Query)
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
}

// Validate checks that required fields are set and values are reasonable
func (opts *SearchOptions) Validate() error {
	if opts.Query == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	if opts.SpaceID == "" {
		return fmt.Errorf("space is required")
	}
	if opts.Limit > MaxSearchLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxSearchLimit, opts.Limit)
	}
	if len(opts.Statuses) == 0 {
		return fmt.Errorf("at least one status is required")
	}
	return nil
}

// LikePattern returns the query escaped for use in a LIKE/ILIKE clause.
func (opts *SearchOptions) LikePattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(opts.Query)) + "%"
}
