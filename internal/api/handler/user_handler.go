package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/core/ports"
)

// UserHandler exposes admin user management: role assignment.
type UserHandler struct {
	profiles ports.ProfileStore
}

func NewUserHandler(profiles ports.ProfileStore) *UserHandler {
	return &UserHandler{profiles: profiles}
}

type updateRoleRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
	Role   string `json:"role" validate:"required,oneof=admin instructor student"`
}

type updateRoleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UpdateRole assigns a role to a user. Registered under the admin prefix;
// the access gate guarantees the caller is an admin before this runs.
//
// @Summary      Update a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateRoleRequest  true  "Role assignment"
// @Success      200   {object}  updateRoleResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/users/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	if err := h.profiles.SetRole(c.Request().Context(), req.UserID, role); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateRoleResponse{Success: true, Message: "user role updated"})
}
