package ports

import (
	"context"

	"github.com/fundbridge/platform/internal/core/domain"
)

// CatalogRepository persists the admin-managed catalog: categories, mentors,
// library resources and testimonials.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateMentor(ctx context.Context, m *domain.Mentor) error
	ListMentors(ctx context.Context) ([]*domain.Mentor, error)
	FindMentor(ctx context.Context, id string) (*domain.Mentor, error)
	// Subscribe records the subscription and bumps the mentor's counter.
	Subscribe(ctx context.Context, s *domain.MentorSubscription) error

	CreateResource(ctx context.Context, r *domain.Resource) error
	ListResources(ctx context.Context) ([]*domain.Resource, error)
	// DeleteResource removes the record and returns it so the blob can go too.
	DeleteResource(ctx context.Context, id string) (*domain.Resource, error)

	CreateTestimonial(ctx context.Context, t *domain.Testimonial) error
	ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error)
}

// CreateMentorInput carries the admin mentor form.
type CreateMentorInput struct {
	UserID    string
	Name      string
	Expertise string
	Bio       string
	Photo     *Upload
}

// CreateResourceInput carries the admin library upload.
type CreateResourceInput struct {
	Title       string
	Description string
	File        Upload
}

// CreateTestimonialInput carries a user's testimonial.
type CreateTestimonialInput struct {
	UserID  string
	Content string
	Rating  int
}

type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateMentor(ctx context.Context, in CreateMentorInput) (*domain.Mentor, error)
	ListMentors(ctx context.Context) ([]*domain.Mentor, error)
	GetMentor(ctx context.Context, id string) (*domain.Mentor, error)
	Subscribe(ctx context.Context, userID, mentorID string) (*domain.MentorSubscription, error)

	CreateResource(ctx context.Context, in CreateResourceInput) (*domain.Resource, error)
	ListResources(ctx context.Context) ([]*domain.Resource, error)
	DeleteResource(ctx context.Context, id string) error

	CreateTestimonial(ctx context.Context, in CreateTestimonialInput) (*domain.Testimonial, error)
	ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error)
}
