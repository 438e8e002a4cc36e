package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

const downloadURLTTL = 15 * time.Minute

// CatalogService backs the admin panels and the public catalog pages.
type CatalogService struct {
	repo    ports.CatalogRepository
	users   ports.UserRepository
	storage ports.ObjectStore
	log     zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, users ports.UserRepository, storage ports.ObjectStore, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		repo:    repo,
		users:   users,
		storage: storage,
		log:     log.With().Str("component", "catalog").Logger(),
	}
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	c := &domain.Category{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

// --- Mentors ---

func (s *CatalogService) CreateMentor(ctx context.Context, in ports.CreateMentorInput) (*domain.Mentor, error) {
	m := &domain.Mentor{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		Expertise: strings.TrimSpace(in.Expertise),
		Bio:       strings.TrimSpace(in.Bio),
		CreatedAt: time.Now().UTC(),
	}

	if in.Photo != nil {
		url, err := s.storage.Put(ctx, objectKey("mentors", "", in.Photo.Filename), *in.Photo)
		if err != nil {
			return nil, fmt.Errorf("upload mentor photo: %w", err)
		}
		m.PhotoURL = url
	}

	// Linking a mentor profile to an account promotes that account.
	if in.UserID != "" {
		if _, err := s.users.UpdateRole(ctx, in.UserID, domain.RoleMentor); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateMentor(ctx, m); err != nil {
		return nil, err
	}

	s.log.Info().Str("mentor_id", m.ID).Msg("mentor created")
	return m, nil
}

func (s *CatalogService) ListMentors(ctx context.Context) ([]*domain.Mentor, error) {
	return s.repo.ListMentors(ctx)
}

func (s *CatalogService) GetMentor(ctx context.Context, id string) (*domain.Mentor, error) {
	return s.repo.FindMentor(ctx, id)
}

func (s *CatalogService) Subscribe(ctx context.Context, userID, mentorID string) (*domain.MentorSubscription, error) {
	if _, err := s.repo.FindMentor(ctx, mentorID); err != nil {
		return nil, err
	}

	sub := &domain.MentorSubscription{
		ID:        uuid.NewString(),
		MentorID:  mentorID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Subscribe(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// --- Educational resources ---

func (s *CatalogService) CreateResource(ctx context.Context, in ports.CreateResourceInput) (*domain.Resource, error) {
	key := objectKey("resources", "", in.File.Filename)
	if _, err := s.storage.Put(ctx, key, in.File); err != nil {
		return nil, fmt.Errorf("upload resource: %w", err)
	}

	r := &domain.Resource{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ObjectKey:   key,
		ContentType: in.File.ContentType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateResource(ctx, r); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}
	return r, nil
}

// ListResources returns the library with a short-lived download link per entry.
func (s *CatalogService) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	items, err := s.repo.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range items {
		url, err := s.storage.PresignGet(ctx, r.ObjectKey, downloadURLTTL)
		if err != nil {
			s.log.Warn().Err(err).Str("resource_id", r.ID).Msg("presign failed")
			continue
		}
		r.DownloadURL = url
	}
	return items, nil
}

func (s *CatalogService) DeleteResource(ctx context.Context, id string) error {
	r, err := s.repo.DeleteResource(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, r.ObjectKey); err != nil {
		s.log.Warn().Err(err).Str("key", r.ObjectKey).Msg("failed to delete resource object")
	}
	return nil
}

// --- Testimonials ---

func (s *CatalogService) CreateTestimonial(ctx context.Context, in ports.CreateTestimonialInput) (*domain.Testimonial, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	t := &domain.Testimonial{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Author:    user.Name,
		Content:   strings.TrimSpace(in.Content),
		Rating:    in.Rating,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	return s.repo.ListTestimonials(ctx)
}
