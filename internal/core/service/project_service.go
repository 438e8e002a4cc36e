package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

type ProjectService struct {
	repo    ports.ProjectRepository
	users   ports.UserRepository
	storage ports.ObjectStore
	logger  zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, users ports.UserRepository, storage ports.ObjectStore, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, users: users, storage: storage, logger: logger}
}

// CreateProject opens a campaign, uploading the cover image first when one is
// attached.
func (s *ProjectService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	if in.Goal <= 0 {
		return nil, domain.ErrInvalidGoal
	}

	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Goal:        in.Goal,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Image != nil {
		url, err := s.storage.Put(ctx, objectKey("projects", in.OwnerID, in.Image.Filename), *in.Image)
		if err != nil {
			return nil, fmt.Errorf("upload project image: %w", err)
		}
		p.ImageURL = url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", p.ID).Str("owner_id", p.OwnerID).Msg("project created")
	return p, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) ListProjects(ctx context.Context, in ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.repo.List(ctx, ports.ListProjectsFilter{
		CategoryID: in.CategoryID,
		Search:     strings.TrimSpace(in.Search),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ProjectService) AddFavorite(ctx context.Context, userID, projectID string) error {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return err
	}
	return s.users.AddFavorite(ctx, userID, projectID)
}

func (s *ProjectService) RemoveFavorite(ctx context.Context, userID, projectID string) error {
	return s.users.RemoveFavorite(ctx, userID, projectID)
}

func (s *ProjectService) Favorites(ctx context.Context, userID string) ([]*domain.Project, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []*domain.Project{}, nil
	}

	items, _, err := s.repo.List(ctx, ports.ListProjectsFilter{
		IDs:   user.Favorites,
		Page:  1,
		Limit: len(user.Favorites),
	})
	return items, err
}

// objectKey builds a storage key of the form <prefix>/<owner>/<uuid><ext>.
func objectKey(prefix, owner, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if owner == "" {
		return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
	}
	return fmt.Sprintf("%s/%s/%s%s", prefix, owner, uuid.NewString(), ext)
}
