package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codefolio/portfolio-api/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog posts. Write operations are
// registered under the admin prefix and reach this handler only through
// the access gate.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

type createPostRequest struct {
	Title      string         `json:"title" validate:"required"`
	Slug       string         `json:"slug"`
	Content    string         `json:"content"`
	Excerpt    string         `json:"excerpt"`
	CoverImage string         `json:"cover_image"`
	Published  bool           `json:"published"`
	Tags       []string       `json:"tags"`
	Metadata   map[string]any `json:"metadata"`
}

type updatePostRequest struct {
	Title      *string        `json:"title"`
	Content    *string        `json:"content"`
	Excerpt    *string        `json:"excerpt"`
	CoverImage *string        `json:"cover_image"`
	Published  *bool          `json:"published"`
	Tags       []string       `json:"tags"`
	Metadata   map[string]any `json:"metadata"`
}

// List returns published posts.
//
// @Summary      List blog posts
// @Tags         blog
// @Produce      json
// @Success      200  {array}  domain.BlogPost
// @Router       /api/blog [get]
func (h *BlogHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// ListAll returns published posts and drafts. Admin surface.
func (h *BlogHandler) ListAll(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns a single post by slug.
//
// @Summary      Get blog post
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.BlogPost
// @Failure      404   {object}  map[string]string
// @Router       /api/blog/{slug} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create creates a post authored by the authenticated identity.
//
// @Summary      Create blog post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  domain.BlogPost
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		AuthorID:   identity.ID,
		Published:  req.Published,
		Tags:       req.Tags,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Update applies a partial update to the post with the given slug.
func (h *BlogHandler) Update(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.UpdatePost(c.Request().Context(), c.Param("slug"), ports.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: req.CoverImage,
		Published:  req.Published,
		Tags:       req.Tags,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes the post with the given slug.
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
