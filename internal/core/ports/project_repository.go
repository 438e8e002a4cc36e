package ports

import (
	"context"

	"github.com/fundbridge/platform/internal/core/domain"
)

// ListProjectsFilter carries all query parameters for listing projects.
type ListProjectsFilter struct {
	CategoryID string   // optional
	Search     string   // optional: partial match on title
	IDs        []string // optional: restrict to these ids (favorites)
	OwnerID    string   // optional
	Page       int      // 1-based
	Limit      int      // capped at 100 by the service
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
	// AddFunds atomically increments money_reached.
	AddFunds(ctx context.Context, id string, amount int64) error
}
