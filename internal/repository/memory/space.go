package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"github.com/google/uuid"
)

// SpaceRepository implements wikiRepo.SpaceRepository in memory
type SpaceRepository struct {
	store *Store
}

// NewSpaceRepository creates a new space repository
func NewSpaceRepository(store *Store) wikiRepo.SpaceRepository {
	return &SpaceRepository{store: store}
}

func (r *SpaceRepository) Create(ctx context.Context, space *wiki.Space) error {
	return r.store.do(ctx, func(d *dataset) error {
		for _, existing := range d.spaces {
			if existing.Key == space.Key {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("space '%s' already exists", space.Key),
					ResourceType: "space",
					ResourceID:   existing.ID,
				}
			}
		}
		space.ID = uuid.NewString()
		d.spaces[space.ID] = *space
		return nil
	})
}

func (r *SpaceRepository) GetByKey(ctx context.Context, key string) (*wiki.Space, error) {
	var found *wiki.Space
	err := r.store.do(ctx, func(d *dataset) error {
		for _, s := range d.spaces {
			if s.Key == key {
				found = &s
				return nil
			}
		}
		return fmt.Errorf("space %s: %w", key, domain.ErrNotFound)
	})
	return found, err
}

func (r *SpaceRepository) List(ctx context.Context, page models.PageRequest) ([]wiki.Space, int, error) {
	var all []wiki.Space
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, s := range d.spaces {
			all = append(all, s)
		}
		return nil
	})
	slices.SortFunc(all, func(a, b wiki.Space) int { return cmp.Compare(a.Key, b.Key) })
	return paginate(all, page), len(all), nil
}
