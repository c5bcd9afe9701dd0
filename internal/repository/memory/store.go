// Package memory is an in-process implementation of every repository
// interface. A single mutex serializes units of work, which gives the same
// guarantees the Postgres backend gets from row locks and unique constraints.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	"wikiflow/internal/domain/repositories"
)

type articleTagKey struct {
	ArticleID string
	TagID     string
}

// dataset holds every table. Values, not pointers, so clone is a snapshot.
type dataset struct {
	spaces      map[string]wiki.Space
	articles    map[string]wiki.Article
	versions    map[string]wiki.ArticleVersion
	reviews     map[string]wiki.ReviewRequest
	tags        map[string]wiki.Tag
	articleTags map[articleTagKey]time.Time
	comments    map[string]wiki.Comment
	users       map[string]models.User
	events      []audit.Event
}

func newDataset() *dataset {
	return &dataset{
		spaces:      map[string]wiki.Space{},
		articles:    map[string]wiki.Article{},
		versions:    map[string]wiki.ArticleVersion{},
		reviews:     map[string]wiki.ReviewRequest{},
		tags:        map[string]wiki.Tag{},
		articleTags: map[articleTagKey]time.Time{},
		comments:    map[string]wiki.Comment{},
		users:       map[string]models.User{},
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		spaces:      maps.Clone(d.spaces),
		articles:    maps.Clone(d.articles),
		versions:    maps.Clone(d.versions),
		reviews:     maps.Clone(d.reviews),
		tags:        maps.Clone(d.tags),
		articleTags: maps.Clone(d.articleTags),
		comments:    maps.Clone(d.comments),
		users:       maps.Clone(d.users),
		events:      slices.Clone(d.events),
	}
}

// Store is the shared state behind the memory repositories
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: newDataset()}
}

type txContextKey struct{}

// inTx reports whether ctx belongs to a unit of work on this store, in which
// case the mutex is already held.
func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txContextKey{}).(*Store)
	return owner == s
}

// do runs fn against the current dataset, taking the lock unless ctx is
// already inside a unit of work.
func (s *Store) do(ctx context.Context, fn func(d *dataset) error) error {
	if s.inTx(ctx) {
		return fn(s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// TransactionManager returns the store's unit-of-work runner
func (s *Store) TransactionManager() repositories.TransactionManager {
	return s
}

// ExecTx runs fn holding the store lock. If fn fails every change it made is
// discarded. Nested calls join the outer unit.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txContextKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// paginate returns the slice of items selected by page
func paginate[T any](items []T, page models.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if page.Size <= 0 || end > len(items) {
		end = len(items)
	}
	return slices.Clone(items[start:end])
}

// NewSet returns every memory repository over one store
func NewSet(store *Store) *repositories.Set {
	return &repositories.Set{
		Spaces:   NewSpaceRepository(store),
		Articles: NewArticleRepository(store),
		Versions: NewVersionRepository(store),
		Reviews:  NewReviewRepository(store),
		Tags:     NewTagRepository(store),
		Comments: NewCommentRepository(store),
		Users:    NewUserRepository(store),
		Events:   NewEventRepository(store),
		Tx:       store.TransactionManager(),
	}
}
