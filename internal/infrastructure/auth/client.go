// Package auth implements the identity provider adapter: an HTTP client
// for the external GoTrue-compatible auth backend, plus the cookie codec
// that carries its credentials across requests.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/codefolio/portfolio-api/internal/api/metrics"
	"github.com/codefolio/portfolio-api/internal/core/domain"
	"github.com/codefolio/portfolio-api/internal/pkg/retry"
)

const defaultTimeout = 10 * time.Second

var ErrMissingConfig = errors.New("auth: missing provider URL or anon key")

// Config captures the settings for reaching the auth backend.
type Config struct {
	// BaseURL is the root of the auth backend, e.g. https://xyz.example.co.
	BaseURL string
	// AnonKey is the public API key sent with every request.
	AnonKey string
	// JWTSecret, when set, lets the adapter verify access tokens locally
	// instead of round-tripping to the /user endpoint.
	JWTSecret string
	Timeout   time.Duration
}

// Client is the HTTP implementation of ports.IdentityProvider.
type Client struct {
	http      *http.Client
	baseURL   string
	anonKey   string
	jwtSecret string
	log       zerolog.Logger
}

// NewClient validates the configuration and returns a provider client.
// Missing URL or key is a startup error, not a per-request condition.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" || cfg.AnonKey == "" {
		return nil, ErrMissingConfig
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   cfg.BaseURL,
		anonKey:   cfg.AnonKey,
		jwtSecret: cfg.JWTSecret,
		log:       log,
	}, nil
}

// providerUser is the wire shape of the backend's user record.
type providerUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u *providerUser) toDomain() *domain.Identity {
	return &domain.Identity{ID: u.ID, Email: u.Email, Metadata: u.UserMetadata}
}

// tokenResponse is the wire shape of the backend's token grant response.
type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         providerUser `json:"user"`
}

func (t *tokenResponse) pair() *domain.TokenPair {
	return &domain.TokenPair{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(t.ExpiresIn) * time.Second),
	}
}

// User resolves the identity behind an access token. With a JWT secret
// configured the token is verified locally; otherwise the /user endpoint is
// consulted (idempotent, retried with backoff).
func (c *Client) User(ctx context.Context, accessToken string) (*domain.Identity, error) {
	if accessToken == "" {
		return nil, domain.ErrIdentityNotFound
	}

	if c.jwtSecret != "" {
		return c.userFromToken(accessToken)
	}

	start := time.Now()
	defer func() {
		metrics.AuthRequestDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())
	}()

	var user providerUser
	err := retry.Do(ctx, 3, 200*time.Millisecond, func() error {
		err := c.get(ctx, "/auth/v1/user", accessToken, &user)
		if errors.Is(err, errUnauthorized) {
			// A rejected token is definitive; retrying cannot change it.
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("auth: get user: %w", err)
	}
	if user.ID == "" {
		return nil, domain.ErrIdentityNotFound
	}
	return user.toDomain(), nil
}

// userFromToken verifies the access token against the shared secret and
// builds the identity from its claims.
func (c *Client) userFromToken(accessToken string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(c.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrIdentityNotFound
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrIdentityNotFound
	}
	email, _ := claims["email"].(string)
	meta, _ := claims["user_metadata"].(map[string]any)
	return &domain.Identity{ID: sub, Email: email, Metadata: meta}, nil
}

// RefreshSession rotates the credential pair via the refresh_token grant.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrIdentityNotFound
	}

	start := time.Now()
	defer func() {
		metrics.AuthRequestDuration.WithLabelValues("refresh").Observe(time.Since(start).Seconds())
	}()

	var resp tokenResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.post(ctx, "/auth/v1/token?grant_type=refresh_token", "", body, &resp); err != nil {
		if errors.Is(err, errUnauthorized) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("auth: refresh session: %w", err)
	}
	return resp.pair(), nil
}

// SignIn verifies an email/password credential via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.TokenPair, *domain.Identity, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	start := time.Now()
	defer func() {
		metrics.AuthRequestDuration.WithLabelValues("signin").Observe(time.Since(start).Seconds())
	}()

	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		if errors.Is(err, errUnauthorized) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("auth: sign in: %w", err)
	}
	return resp.pair(), resp.User.toDomain(), nil
}

// SignOut revokes the provider-side session.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	start := time.Now()
	defer func() {
		metrics.AuthRequestDuration.WithLabelValues("signout").Observe(time.Since(start).Seconds())
	}()

	if err := c.post(ctx, "/auth/v1/logout", accessToken, nil, nil); err != nil && !errors.Is(err, errUnauthorized) {
		return fmt.Errorf("auth: sign out: %w", err)
	}
	return nil
}

// Ping checks the auth backend's health endpoint. Used by the readiness
// probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/auth/v1/health", "", nil)
}

var errUnauthorized = errors.New("auth: unauthorized")

func (c *Client) get(ctx context.Context, path, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, bearer, out)
}

func (c *Client) post(ctx context.Context, path, bearer string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, bearer, out)
}

func (c *Client) do(req *http.Request, bearer string, out any) error {
	req.Header.Set("apikey", c.anonKey)
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusBadRequest:
		// GoTrue reports bad grants as 400.
		return errUnauthorized
	case resp.StatusCode >= 300:
		return fmt.Errorf("auth backend returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
