package wiki

import (
	"context"
	"testing"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSpace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	space, err := env.svc.Spaces.CreateSpace(ctx, admin, &wikiSvc.CreateSpaceRequest{Key: " eng ", Name: "Engineering"})
	require.NoError(t, err)
	assert.Equal(t, "eng", space.Key)
	assert.NotEmpty(t, space.ID)

	ev := env.recorder.last()
	assert.Equal(t, audit.SpaceCreated, ev.EventType)
	assert.Equal(t, "eng", ev.SpaceKey)
	assert.True(t, ev.IsPublic)

	tests := []struct {
		name    string
		caller  models.Caller
		req     wikiSvc.CreateSpaceRequest
		wantErr error
	}{
		{name: "duplicate key", caller: admin, req: wikiSvc.CreateSpaceRequest{Key: "eng", Name: "Again"}, wantErr: domain.ErrConflict},
		{name: "editor forbidden", caller: editor, req: wikiSvc.CreateSpaceRequest{Key: "ops", Name: "Ops"}, wantErr: domain.ErrForbidden},
		{name: "bad key characters", caller: admin, req: wikiSvc.CreateSpaceRequest{Key: "a b", Name: "Ops"}, wantErr: domain.ErrValidation},
		{name: "missing name", caller: admin, req: wikiSvc.CreateSpaceRequest{Key: "ops", Name: ""}, wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.svc.Spaces.CreateSpace(ctx, tt.caller, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := env.svc.Spaces.GetSpace(ctx, "eng")
	require.NoError(t, err)
	assert.Equal(t, space.ID, got.ID)

	_, err = env.svc.Spaces.GetSpace(ctx, "ops")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := env.svc.Spaces.ListSpaces(ctx, models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}
