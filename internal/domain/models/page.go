package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is a zero-based page selector.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// ApplyDefaults fills in default values for unset or out-of-range fields
func (p *PageRequest) ApplyDefaults(defaultSize int) {
	if p.Page < 0 {
		p.Page = 0
	}
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of results plus the total match count.
type Page[T any] struct {
	Items      []T  `json:"items"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	HasMore    bool `json:"has_more"`
}

// NewPage wraps items fetched with req into a Page.
func NewPage[T any](items []T, total int, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:      items,
		TotalCount: total,
		Page:       req.Page,
		Size:       req.Size,
		HasMore:    req.Offset()+len(items) < total,
	}
}
