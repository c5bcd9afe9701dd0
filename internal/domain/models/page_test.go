package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name        string
		in          PageRequest
		defaultSize int
		want        PageRequest
	}{
		{name: "zero value", in: PageRequest{}, defaultSize: 10, want: PageRequest{Page: 0, Size: 10}},
		{name: "negative page", in: PageRequest{Page: -3, Size: 5}, defaultSize: 10, want: PageRequest{Page: 0, Size: 5}},
		{name: "oversized", in: PageRequest{Page: 2, Size: 5000}, defaultSize: 10, want: PageRequest{Page: 2, Size: MaxPageSize}},
		{name: "bad default", in: PageRequest{}, defaultSize: 0, want: PageRequest{Page: 0, Size: DefaultPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.ApplyDefaults(tt.defaultSize)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPage(t *testing.T) {
	req := PageRequest{Page: 1, Size: 2}

	page := NewPage([]string{"c", "d"}, 5, req)
	assert.True(t, page.HasMore)
	assert.Equal(t, 5, page.TotalCount)

	last := NewPage([]string{"e"}, 5, PageRequest{Page: 2, Size: 2})
	assert.False(t, last.HasMore)

	empty := NewPage[string](nil, 0, req)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleEditor, ParseRole("ROLE_EDITOR"))
	assert.Equal(t, RoleViewer, ParseRole("superuser"))
	assert.Equal(t, RoleViewer, ParseRole(""))
}

func TestCaller_Actor(t *testing.T) {
	assert.Equal(t, SystemActor, NewCaller("  ", RoleViewer).Actor())
	assert.Equal(t, SystemActor, Caller{}.Actor())
	assert.Equal(t, "alice", NewCaller(" alice ", RoleEditor).Actor())
}
