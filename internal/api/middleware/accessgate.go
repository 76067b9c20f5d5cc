package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/api/metrics"
	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/core/ports"
	"github.com/codefolio/portfolio-api/internal/infrastructure/auth"
)

const (
	loginPath        = "/login"
	unauthorizedPath = "/unauthorized"
)

// AccessGate is the edge enforcement point: for every request to a
// non-public path it refreshes the session credentials and decides whether
// to forward, redirect to login, or redirect to the unauthorized page.
// Every failure path resolves to one of the two redirects; no provider
// error escapes to the caller.
type AccessGate struct {
	provider ports.IdentityProvider
	profiles ports.ProfileStore
	cookies  auth.CookieCodec
	table    RouteTable
	log      zerolog.Logger
}

func NewAccessGate(provider ports.IdentityProvider, profiles ports.ProfileStore, cookies auth.CookieCodec, table RouteTable, log zerolog.Logger) *AccessGate {
	return &AccessGate{
		provider: provider,
		profiles: profiles,
		cookies:  cookies,
		table:    table,
		log:      log,
	}
}

// Middleware returns the echo middleware implementing the gate. Ordering is
// strict: public bypass, credential refresh, login short-circuit, identity
// resolution, role resolution, route authorization.
func (g *AccessGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			// Public routes are forwarded with no credential checks at all.
			if g.table.Public(path) {
				metrics.GateDecisionsTotal.WithLabelValues("public_bypass").Inc()
				return next(c)
			}

			ctx := c.Request().Context()

			// Refresh and rotate credentials before any check. The rewritten
			// cookies ride on the response whichever way the decision goes.
			pair := g.cookies.ReadTokens(c.Request())
			if pair.RefreshToken != "" {
				if refreshed, err := g.provider.RefreshSession(ctx, pair.RefreshToken); err == nil {
					pair = *refreshed
					g.cookies.WriteTokens(c.Response(), pair)
				} else {
					g.log.Debug().Err(err).Str("path", path).Msg("credential refresh failed")
				}
			}

			// The login page itself never gets role-checked, or a user with
			// expired credentials could be redirected to login forever.
			if path == loginPath {
				metrics.GateDecisionsTotal.WithLabelValues("login_shortcircuit").Inc()
				return next(c)
			}

			identity, err := g.provider.User(ctx, pair.AccessToken)
			if err != nil || identity == nil {
				metrics.GateDecisionsTotal.WithLabelValues("login_redirect").Inc()
				return c.Redirect(http.StatusFound, loginPath+"?redirect="+url.QueryEscape(path))
			}

			role, err := g.profiles.GetRole(ctx, identity.ID)
			if err != nil {
				// Fail closed: a missing profile or a store error is never a
				// default role.
				if err == domain.ErrProfileNotFound {
					metrics.RoleLookupsTotal.WithLabelValues("not_found").Inc()
				} else {
					metrics.RoleLookupsTotal.WithLabelValues("error").Inc()
					g.log.Warn().Err(err).Str("identity_id", identity.ID).Msg("role lookup failed")
				}
				metrics.GateDecisionsTotal.WithLabelValues("unauthorized_redirect").Inc()
				return c.Redirect(http.StatusFound, unauthorizedPath)
			}
			metrics.RoleLookupsTotal.WithLabelValues("hit").Inc()

			if rule, ok := g.table.Match(path); ok && !rule.Allows(role) {
				metrics.GateDecisionsTotal.WithLabelValues("unauthorized_redirect").Inc()
				return c.Redirect(http.StatusFound, unauthorizedPath)
			}

			c.Set("identity", identity)
			c.Set("role", role)

			metrics.GateDecisionsTotal.WithLabelValues("forward").Inc()
			return next(c)
		}
	}
}
