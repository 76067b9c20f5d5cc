package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/core/ports"
)

// ProjectService implements portfolio project CRUD on top of a repository.
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

func (s *ProjectService) ListProjects(ctx context.Context, includeDrafts bool) ([]domain.Project, error) {
	return s.repo.List(ctx, !includeDrafts)
}

func (s *ProjectService) GetProject(ctx context.Context, slug string) (*domain.Project, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.Title == "" || input.AuthorID == "" {
		return nil, domain.ErrInvalidInput
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Title:        input.Title,
		Slug:         slug,
		Description:  input.Description,
		Content:      input.Content,
		CoverImage:   input.CoverImage,
		AuthorID:     input.AuthorID,
		Published:    input.Published,
		CreatedAt:    now,
		UpdatedAt:    now,
		Tags:         input.Tags,
		Technologies: input.Technologies,
		LiveURL:      input.LiveURL,
		GithubURL:    input.GithubURL,
		Metadata:     input.Metadata,
	}
	if project.Published {
		project.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", created.Slug).Str("author_id", created.AuthorID).Msg("project created")
	return created, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, slug string, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Content != nil {
		project.Content = *input.Content
	}
	if input.CoverImage != nil {
		project.CoverImage = *input.CoverImage
	}
	if input.Tags != nil {
		project.Tags = input.Tags
	}
	if input.Technologies != nil {
		project.Technologies = input.Technologies
	}
	if input.LiveURL != nil {
		project.LiveURL = *input.LiveURL
	}
	if input.GithubURL != nil {
		project.GithubURL = *input.GithubURL
	}
	if input.Metadata != nil {
		project.Metadata = input.Metadata
	}
	if input.Published != nil {
		if *input.Published && !project.Published {
			project.PublishedAt = &now
		}
		project.Published = *input.Published
	}
	project.UpdatedAt = now

	return s.repo.Update(ctx, project)
}

func (s *ProjectService) DeleteProject(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.logger.Info().Str("slug", slug).Msg("project deleted")
	return nil
}
