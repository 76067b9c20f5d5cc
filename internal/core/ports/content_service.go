package ports

import (
	"context"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// CreatePostInput carries the fields a caller may set when creating a post.
type CreatePostInput struct {
	Title      string
	Slug       string
	Content    string
	Excerpt    string
	CoverImage string
	AuthorID   string
	Published  bool
	Tags       []string
	Metadata   map[string]any
}

// UpdatePostInput carries partial updates; nil pointers leave the field
// untouched.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	Excerpt    *string
	CoverImage *string
	Published  *bool
	Tags       []string
	Metadata   map[string]any
}

type BlogService interface {
	ListPosts(ctx context.Context, includeDrafts bool) ([]domain.BlogPost, error)
	GetPost(ctx context.Context, slug string) (*domain.BlogPost, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.BlogPost, error)
	UpdatePost(ctx context.Context, slug string, input UpdatePostInput) (*domain.BlogPost, error)
	DeletePost(ctx context.Context, slug string) error
}

// CreateProjectInput mirrors CreatePostInput for portfolio projects.
type CreateProjectInput struct {
	Title        string
	Slug         string
	Description  string
	Content      string
	CoverImage   string
	AuthorID     string
	Published    bool
	Tags         []string
	Technologies []string
	LiveURL      string
	GithubURL    string
	Metadata     map[string]any
}

type UpdateProjectInput struct {
	Title        *string
	Description  *string
	Content      *string
	CoverImage   *string
	Published    *bool
	Tags         []string
	Technologies []string
	LiveURL      *string
	GithubURL    *string
	Metadata     map[string]any
}

type ProjectService interface {
	ListProjects(ctx context.Context, includeDrafts bool) ([]domain.Project, error)
	GetProject(ctx context.Context, slug string) (*domain.Project, error)
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, slug string, input UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, slug string) error
}
