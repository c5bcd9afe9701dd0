package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/repositories"
	wikiSvc "wikiflow/internal/domain/services/wiki"
	serviceWiki "wikiflow/internal/service/wiki"
)

// Result counts what a seed run created
type Result struct {
	Users     int
	Spaces    int
	Tags      int
	Articles  int
	Versions  int
	Published int
}

// Seeder loads fixtures through the wiki services, so seeded data passes the
// same validation and produces the same audit trail as API traffic.
type Seeder struct {
	services *serviceWiki.Services
	users    repositories.UserRepository
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(services *serviceWiki.Services, users repositories.UserRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		services: services,
		users:    users,
		logger:   logger,
	}
}

// Apply creates everything in f. Spaces and tags that already exist are
// reused, so a fixture file can be applied to a populated database.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (*Result, error) {
	res := &Result{}
	admin := models.SystemCaller()

	for _, u := range f.Users {
		user := &models.User{
			Username:  strings.TrimSpace(u.Username),
			Role:      models.ParseRole(u.Role),
			CreatedAt: time.Now().UTC(),
		}
		if user.Username == "" {
			return res, fmt.Errorf("user fixture without username")
		}
		if err := s.users.Upsert(ctx, user); err != nil {
			return res, fmt.Errorf("user %s: %w", user.Username, err)
		}
		res.Users++
	}

	for _, sp := range f.Spaces {
		_, err := s.services.Spaces.CreateSpace(ctx, admin, &wikiSvc.CreateSpaceRequest{Key: sp.Key, Name: sp.Name})
		switch {
		case err == nil:
			res.Spaces++
		case errors.Is(err, domain.ErrConflict):
			s.logger.Info("space exists, skipping", "space_key", sp.Key)
		default:
			return res, fmt.Errorf("space %s: %w", sp.Key, err)
		}
	}

	for _, name := range f.Tags {
		_, err := s.services.Tags.CreateTag(ctx, admin, &wikiSvc.CreateTagRequest{Name: name})
		switch {
		case err == nil:
			res.Tags++
		case errors.Is(err, domain.ErrConflict):
			s.logger.Info("tag exists, skipping", "tag", name)
		default:
			return res, fmt.Errorf("tag %s: %w", name, err)
		}
	}

	tagIDs, err := s.tagIndex(ctx)
	if err != nil {
		return res, err
	}

	for i, a := range f.Articles {
		if err := s.applyArticle(ctx, a, tagIDs, res); err != nil {
			return res, fmt.Errorf("article %d (%s): %w", i, a.Title, err)
		}
	}

	return res, nil
}

func (s *Seeder) applyArticle(ctx context.Context, a ArticleFixture, tagIDs map[string]string, res *Result) error {
	author := models.NewCaller(a.Author, models.RoleEditor)
	if a.Author == "" {
		author = models.SystemCaller()
	}

	detail, err := s.services.Articles.CreateArticle(ctx, author, a.Space, &wikiSvc.CreateArticleRequest{
		Title:   a.Title,
		Content: a.Content,
	})
	if err != nil {
		return err
	}
	res.Articles++
	res.Versions++

	for _, content := range a.Edits {
		if _, err := s.services.Versions.AddVersion(ctx, author, detail.ID, &wikiSvc.AddVersionRequest{Content: content}); err != nil {
			return err
		}
		res.Versions++
	}

	for _, name := range a.Tags {
		id, ok := tagIDs[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("unknown tag %q", name)
		}
		if _, err := s.services.Tags.AttachTag(ctx, author, detail.ID, id); err != nil {
			return err
		}
	}

	if a.Publish {
		review, err := s.services.Reviews.Submit(ctx, author, detail.ID)
		if err != nil {
			return err
		}
		if _, err := s.services.Reviews.Approve(ctx, models.SystemCaller(), review.ID); err != nil {
			return err
		}
		res.Published++
	}

	s.logger.Info("article seeded",
		"space_key", a.Space,
		"slug", detail.Slug,
		"published", a.Publish,
	)
	return nil
}

// tagIndex maps lower-cased tag names to ids
func (s *Seeder) tagIndex(ctx context.Context) (map[string]string, error) {
	index := make(map[string]string)
	page := models.PageRequest{Page: 0, Size: models.MaxPageSize}
	for {
		tags, err := s.services.Tags.ListTags(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("list tags: %w", err)
		}
		for _, t := range tags.Items {
			index[strings.ToLower(t.Name)] = t.ID
		}
		if !tags.HasMore {
			return index, nil
		}
		page.Page++
	}
}
