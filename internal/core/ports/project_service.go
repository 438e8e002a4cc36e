package ports

import (
	"context"
	"io"

	"github.com/fundbridge/platform/internal/core/domain"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateProjectInput carries everything needed to open a new campaign.
type CreateProjectInput struct {
	OwnerID     string
	Title       string
	Description string
	CategoryID  string
	Goal        int64
	Image       *Upload // optional
}

// ListProjectsInput carries the public list query.
type ListProjectsInput struct {
	CategoryID string
	Search     string
	Page       int
	Limit      int
}

// ListProjectsResult is a page of projects.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type ProjectService interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, in ListProjectsInput) (*ListProjectsResult, error)
	AddFavorite(ctx context.Context, userID, projectID string) error
	RemoveFavorite(ctx context.Context, userID, projectID string) error
	Favorites(ctx context.Context, userID string) ([]*domain.Project, error)
}
