package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/core/ports"
)

// BlogService implements blog post CRUD on top of a repository.
type BlogService struct {
	repo   ports.BlogRepository
	logger zerolog.Logger
}

func NewBlogService(repo ports.BlogRepository, logger zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, logger: logger}
}

func (s *BlogService) ListPosts(ctx context.Context, includeDrafts bool) ([]domain.BlogPost, error) {
	return s.repo.List(ctx, !includeDrafts)
}

func (s *BlogService) GetPost(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *BlogService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.BlogPost, error) {
	if input.Title == "" || input.AuthorID == "" {
		return nil, domain.ErrInvalidInput
	}

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
	}

	now := time.Now().UTC()
	post := &domain.BlogPost{
		Title:      input.Title,
		Slug:       slug,
		Content:    input.Content,
		Excerpt:    input.Excerpt,
		CoverImage: input.CoverImage,
		AuthorID:   input.AuthorID,
		Published:  input.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
		Tags:       input.Tags,
		Metadata:   input.Metadata,
	}
	if post.Published {
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", created.Slug).Str("author_id", created.AuthorID).Msg("blog post created")
	return created, nil
}

func (s *BlogService) UpdatePost(ctx context.Context, slug string, input ports.UpdatePostInput) (*domain.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.CoverImage != nil {
		post.CoverImage = *input.CoverImage
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if input.Metadata != nil {
		post.Metadata = input.Metadata
	}
	if input.Published != nil {
		if *input.Published && !post.Published {
			post.PublishedAt = &now
		}
		post.Published = *input.Published
	}
	post.UpdatedAt = now

	return s.repo.Update(ctx, post)
}

func (s *BlogService) DeletePost(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.logger.Info().Str("slug", slug).Msg("blog post deleted")
	return nil
}

// Slugify derives a URL slug from a title: lowercase, runs of
// non-alphanumerics collapsed to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
