package wiki

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"wikiflow/internal/config"
	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"
	"wikiflow/internal/domain/models/audit"
	"wikiflow/internal/domain/models/wiki"
	wikiRepo "wikiflow/internal/domain/repositories/wiki"
	"wikiflow/internal/domain/services"
	wikiSvc "wikiflow/internal/domain/services/wiki"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var spaceKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// spaceService implements the SpaceService interface
type spaceService struct {
	spaceRepo  wikiRepo.SpaceRepository
	authorizer services.Authorizer
	recorder   services.AuditRecorder
	logger     *slog.Logger
}

// NewSpaceService creates a new space service
func NewSpaceService(
	spaceRepo wikiRepo.SpaceRepository,
	authorizer services.Authorizer,
	recorder services.AuditRecorder,
	logger *slog.Logger,
) wikiSvc.SpaceService {
	return &spaceService{
		spaceRepo:  spaceRepo,
		authorizer: authorizer,
		recorder:   recorder,
		logger:     logger,
	}
}

// CreateSpace creates a space; keys are unique
func (s *spaceService) CreateSpace(ctx context.Context, caller models.Caller, req *wikiSvc.CreateSpaceRequest) (*wiki.Space, error) {
	if err := s.authorizer.CanAdminister(caller); err != nil {
		return nil, err
	}

	req.Key = strings.TrimSpace(req.Key)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Key,
			validation.Required,
			validation.RuneLength(1, config.MaxSpaceKeyLength),
			validation.Match(spaceKeyPattern).Error("may only contain letters, digits, '-' and '_'"),
		),
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxSpaceNameLength)),
	); err != nil {
		return nil, validationError(err)
	}

	space := &wiki.Space{
		Key:       req.Key,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.spaceRepo.Create(ctx, space); err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			conflictErr.Message = "Space key already exists"
		}
		return nil, err
	}

	s.recorder.Record(audit.Event{
		EventType:  audit.SpaceCreated,
		EntityType: audit.EntitySpace,
		EntityID:   space.ID,
		SpaceKey:   space.Key,
		Actor:      caller.Actor(),
		Message:    "Created space: " + space.Name,
		IsPublic:   true,
		Metadata:   map[string]any{"spaceKey": space.Key, "name": space.Name},
	})

	s.logger.Info("space created",
		"id", space.ID,
		"space_key", space.Key,
		"actor", caller.Actor(),
	)

	return space, nil
}

// GetSpace returns a space by key
func (s *spaceService) GetSpace(ctx context.Context, key string) (*wiki.Space, error) {
	return s.spaceRepo.GetByKey(ctx, strings.TrimSpace(key))
}

// ListSpaces lists spaces ordered by key
func (s *spaceService) ListSpaces(ctx context.Context, page models.PageRequest) (*models.Page[wiki.Space], error) {
	page.ApplyDefaults(models.DefaultPageSize)
	spaces, total, err := s.spaceRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return models.NewPage(spaces, total, page), nil
}
