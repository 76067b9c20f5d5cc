package domain

import "time"

// Identity is the authenticated principal as returned by the external
// identity provider. The provider owns the record; this service never
// mutates it except through delegated provider calls.
type Identity struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// TokenPair holds the provider-issued credentials carried in cookies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Session is the ephemeral combination of an identity and its resolved
// role. It is derived per request (server) or per cache lifecycle (client),
// never persisted as-is.
type Session struct {
	Identity *Identity `json:"user"`
	Role     Role      `json:"role"`
}

// SessionRecord is the server-trusted session stored in Redis and addressed
// by the session cookie.
type SessionRecord struct {
	ID         string    `json:"session_id"`
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AuthEventKind enumerates the identity-provider push notifications.
type AuthEventKind string

const (
	AuthSignedIn       AuthEventKind = "signed_in"
	AuthSignedOut      AuthEventKind = "signed_out"
	AuthTokenRefreshed AuthEventKind = "token_refreshed"
)

// AuthEvent signals a change in authentication state. Identity is nil for
// sign-out events.
type AuthEvent struct {
	Kind     AuthEventKind
	Identity *Identity
}
