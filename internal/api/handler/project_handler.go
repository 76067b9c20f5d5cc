package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codefolio/portfolio-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for portfolio projects.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Title        string         `json:"title" validate:"required"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description"`
	Content      string         `json:"content"`
	CoverImage   string         `json:"cover_image"`
	Published    bool           `json:"published"`
	Tags         []string       `json:"tags"`
	Technologies []string       `json:"technologies"`
	LiveURL      string         `json:"live_url" validate:"omitempty,url"`
	GithubURL    string         `json:"github_url" validate:"omitempty,url"`
	Metadata     map[string]any `json:"metadata"`
}

type updateProjectRequest struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	Content      *string        `json:"content"`
	CoverImage   *string        `json:"cover_image"`
	Published    *bool          `json:"published"`
	Tags         []string       `json:"tags"`
	Technologies []string       `json:"technologies"`
	LiveURL      *string        `json:"live_url"`
	GithubURL    *string        `json:"github_url"`
	Metadata     map[string]any `json:"metadata"`
}

// List returns published projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {array}  domain.Project
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// ListAll returns published projects and drafts. Admin surface.
func (h *ProjectHandler) ListAll(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get returns a single project by slug.
//
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        slug  path      string  true  "Project slug"
// @Success      200   {object}  domain.Project
// @Failure      404   {object}  map[string]string
// @Router       /api/projects/{slug} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.GetProject(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create creates a project authored by the authenticated identity.
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Content:      req.Content,
		CoverImage:   req.CoverImage,
		AuthorID:     identity.ID,
		Published:    req.Published,
		Tags:         req.Tags,
		Technologies: req.Technologies,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		Metadata:     req.Metadata,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Update applies a partial update to the project with the given slug.
func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.UpdateProject(c.Request().Context(), c.Param("slug"), ports.UpdateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		CoverImage:   req.CoverImage,
		Published:    req.Published,
		Tags:         req.Tags,
		Technologies: req.Technologies,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		Metadata:     req.Metadata,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete removes the project with the given slug.
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("slug")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
