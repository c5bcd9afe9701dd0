package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wikiflow/internal/domain/models/audit"
)

func TestWhereClause(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    *audit.Filter
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "empty filter matches everything",
			filter:    &audit.Filter{},
			wantWhere: "",
			wantArgs:  0,
		},
		{
			name:      "space and public only",
			filter:    &audit.Filter{SpaceKey: "ENG", PublicOnly: true},
			wantWhere: "WHERE space_key = $1 AND is_public",
			wantArgs:  1,
		},
		{
			name: "args are numbered in order",
			filter: &audit.Filter{
				Actor:     "alice",
				EventType: audit.ArticleCreated,
				From:      &from,
			},
			wantWhere: "WHERE actor = $1 AND event_type = $2 AND created_at >= $3",
			wantArgs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := whereClause(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}
