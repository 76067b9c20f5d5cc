package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// ctxIdentity extracts the identity and role injected by the access gate
// and performs a fast-fail check before any service call: both must be
// present, proving the gate ran and authorized the request.
func ctxIdentity(c echo.Context) (*domain.Identity, domain.Role, error) {
	identity, _ := c.Get("identity").(*domain.Identity)
	if identity == nil {
		return nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}

	role, _ := c.Get("role").(domain.Role)
	if !role.Valid() {
		return nil, "", echo.NewHTTPError(http.StatusForbidden, "missing role context")
	}

	return identity, role, nil
}
