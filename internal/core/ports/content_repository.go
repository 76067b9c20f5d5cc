package ports

import (
	"context"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// BlogRepository defines persistence for blog posts.
type BlogRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	Create(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
	Update(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
	Delete(ctx context.Context, slug string) error
}

// ProjectRepository defines persistence for portfolio projects.
type ProjectRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]domain.Project, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, slug string) error
}
