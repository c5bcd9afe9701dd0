package memory

import (
	"context"
	"slices"
	"strings"

	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"

	"github.com/google/uuid"
)

// CommentRepository implements wikiRepo.CommentRepository in memory
type CommentRepository struct {
	store *Store
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(store *Store) wikiRepo.CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) Create(ctx context.Context, comment *wiki.Comment) error {
	return r.store.do(ctx, func(d *dataset) error {
		comment.ID = uuid.NewString()
		d.comments[comment.ID] = *comment
		return nil
	})
}

func (r *CommentRepository) ListByVersion(ctx context.Context, articleID string, versionNo int, page models.PageRequest) ([]wiki.Comment, int, error) {
	var matched []wiki.Comment
	_ = r.store.do(ctx, func(d *dataset) error {
		for _, c := range d.comments {
			if c.ArticleID == articleID && c.VersionNo == versionNo {
				matched = append(matched, c)
			}
		}
		return nil
	})
	slices.SortFunc(matched, func(a, b wiki.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return paginate(matched, page), len(matched), nil
}

func (r *CommentRepository) CountByVersion(ctx context.Context, articleID string, versionNo int) (int, error) {
	count := 0
	err := r.store.do(ctx, func(d *dataset) error {
		for _, c := range d.comments {
			if c.ArticleID == articleID && c.VersionNo == versionNo {
				count++
			}
		}
		return nil
	})
	return count, err
}
