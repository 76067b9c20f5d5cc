package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/api/metrics"
	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/core/ports"
	"github.com/codefolio/portfolio-api/internal/core/service"
	"github.com/codefolio/portfolio-api/internal/infrastructure/auth"
)

const defaultSessionTTL = 24 * time.Hour

// SessionHandler exposes the session-lookup, sign-in and sign-out endpoints.
type SessionHandler struct {
	provider ports.IdentityProvider
	profiles ports.ProfileStore
	sessions ports.SessionStore
	cookies  auth.CookieCodec
	events   *service.AuthEventHub
	ttl      time.Duration
	log      zerolog.Logger
}

func NewSessionHandler(provider ports.IdentityProvider, profiles ports.ProfileStore, sessions ports.SessionStore, cookies auth.CookieCodec, events *service.AuthEventHub, ttl time.Duration, log zerolog.Logger) *SessionHandler {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionHandler{
		provider: provider,
		profiles: profiles,
		sessions: sessions,
		cookies:  cookies,
		events:   events,
		ttl:      ttl,
		log:      log,
	}
}

type sessionResponse struct {
	Session *domain.Session `json:"session"`
}

// Session returns the caller's session, or null. The server-trusted
// record addressed by the session cookie is the authoritative fast path;
// the token-and-profile path covers callers without a record. The endpoint
// always answers 200: anonymous callers, missing profiles and provider
// errors are all reported as {"session": null}, never as 4xx/5xx.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/auth/session [get]
func (h *SessionHandler) Session(c echo.Context) error {
	ctx := c.Request().Context()

	if sessionID := h.cookies.ReadSessionID(c.Request()); sessionID != "" {
		rec, err := h.sessions.Get(ctx, sessionID)
		if err != nil {
			h.log.Warn().Err(err).Msg("session lookup: record fetch failed")
		} else if rec != nil {
			metrics.SessionResolutionsTotal.WithLabelValues("server").Inc()
			return c.JSON(http.StatusOK, sessionResponse{Session: &domain.Session{
				Identity: &domain.Identity{ID: rec.IdentityID, Email: rec.Email},
				Role:     rec.Role,
			}})
		}
	}

	pair := h.cookies.ReadTokens(c.Request())
	identity, err := h.provider.User(ctx, pair.AccessToken)
	if err != nil || identity == nil {
		if err != nil && err != domain.ErrIdentityNotFound {
			h.log.Debug().Err(err).Msg("session lookup: identity resolution failed")
		}
		metrics.SessionResolutionsTotal.WithLabelValues("none").Inc()
		return c.JSON(http.StatusOK, sessionResponse{Session: nil})
	}

	role, err := h.profiles.GetRole(ctx, identity.ID)
	if err != nil {
		h.log.Debug().Err(err).Str("identity_id", identity.ID).Msg("session lookup: role resolution failed")
		metrics.SessionResolutionsTotal.WithLabelValues("none").Inc()
		return c.JSON(http.StatusOK, sessionResponse{Session: nil})
	}

	metrics.SessionResolutionsTotal.WithLabelValues("provider").Inc()
	return c.JSON(http.StatusOK, sessionResponse{Session: &domain.Session{Identity: identity, Role: role}})
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	User *domain.Identity `json:"user"`
	Role domain.Role      `json:"role"`
}

// SignIn verifies the credential against the identity provider, stores a
// server-trusted session record, and issues credential cookies.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	pair, identity, err := h.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	// Fail closed: an identity without a profile gets no session.
	role, err := h.profiles.GetRole(ctx, identity.ID)
	if err != nil {
		return err
	}

	sessionID, err := auth.NewSessionID()
	if err != nil {
		return err
	}

	expiresAt := time.Now().UTC().Add(h.ttl)
	rec := domain.SessionRecord{
		ID:         sessionID,
		IdentityID: identity.ID,
		Email:      identity.Email,
		Role:       role,
		ExpiresAt:  expiresAt,
	}
	if err := h.sessions.Put(ctx, rec); err != nil {
		return err
	}

	h.cookies.WriteTokens(c.Response(), *pair)
	h.cookies.WriteSessionID(c.Response(), sessionID, expiresAt)

	h.events.Publish(domain.AuthEvent{Kind: domain.AuthSignedIn, Identity: identity})
	h.log.Info().Str("identity_id", identity.ID).Msg("signed in")

	return c.JSON(http.StatusOK, signInResponse{User: identity, Role: role})
}

type signOutResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SignOut revokes the provider session, drops the server session record and
// clears credential cookies.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  signOutResponse
// @Failure      500  {object}  signOutResponse
// @Router       /api/auth/signout [post]
func (h *SessionHandler) SignOut(c echo.Context) error {
	ctx := c.Request().Context()

	pair := h.cookies.ReadTokens(c.Request())
	if err := h.provider.SignOut(ctx, pair.AccessToken); err != nil {
		h.log.Error().Err(err).Msg("provider sign-out failed")
		return c.JSON(http.StatusInternalServerError, signOutResponse{Success: false, Error: "failed to sign out"})
	}

	if sessionID := h.cookies.ReadSessionID(c.Request()); sessionID != "" {
		if err := h.sessions.Delete(ctx, sessionID); err != nil {
			h.log.Warn().Err(err).Msg("session record delete failed")
		}
	}

	h.cookies.ClearTokens(c.Response())
	h.cookies.ClearSessionID(c.Response())

	h.events.Publish(domain.AuthEvent{Kind: domain.AuthSignedOut})

	return c.JSON(http.StatusOK, signOutResponse{Success: true})
}
