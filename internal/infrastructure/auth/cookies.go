package auth

import (
	"net/http"
	"time"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

const (
	// AccessTokenCookie and RefreshTokenCookie carry the provider
	// credentials; SessionCookie addresses the server-trusted session
	// record in Redis.
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
	SessionCookie      = "portfolio-session"
)

// CookieCodec reads and writes the credential cookies. The edge gate
// rewrites them on every non-public pass; this is how session continuity
// is maintained across requests.
type CookieCodec struct {
	// Secure should be true everywhere except local development.
	Secure bool
}

// ReadTokens extracts the credential pair from the request. Missing cookies
// yield empty strings, which downstream callers treat as anonymous.
func (cc CookieCodec) ReadTokens(r *http.Request) domain.TokenPair {
	var pair domain.TokenPair
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		pair.AccessToken = c.Value
	}
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		pair.RefreshToken = c.Value
	}
	return pair
}

// WriteTokens sets the credential cookies on the response.
func (cc CookieCodec) WriteTokens(w http.ResponseWriter, pair domain.TokenPair) {
	cc.set(w, AccessTokenCookie, pair.AccessToken, pair.ExpiresAt)
	cc.set(w, RefreshTokenCookie, pair.RefreshToken, pair.ExpiresAt.Add(24*time.Hour))
}

// ClearTokens removes the credential cookies from the client.
func (cc CookieCodec) ClearTokens(w http.ResponseWriter) {
	cc.clear(w, AccessTokenCookie)
	cc.clear(w, RefreshTokenCookie)
}

// ReadSessionID returns the session cookie value, or "" when absent.
func (cc CookieCodec) ReadSessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// WriteSessionID sets the session cookie.
func (cc CookieCodec) WriteSessionID(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	cc.set(w, SessionCookie, sessionID, expiresAt)
}

// ClearSessionID removes the session cookie.
func (cc CookieCodec) ClearSessionID(w http.ResponseWriter) {
	cc.clear(w, SessionCookie)
}

func (cc CookieCodec) set(w http.ResponseWriter, name, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cc CookieCodec) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
