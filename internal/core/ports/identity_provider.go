package ports

import (
	"context"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// IdentityProvider is the external authentication backend. Implementations
// return identity facts only; authorization decisions live elsewhere.
type IdentityProvider interface {
	// User resolves the identity carried by an access token.
	// Returns domain.ErrIdentityNotFound when the token is empty, expired,
	// or rejected by the provider.
	User(ctx context.Context, accessToken string) (*domain.Identity, error)

	// RefreshSession rotates the credential pair. The returned pair must be
	// written back to the response on every pass through the edge gate.
	RefreshSession(ctx context.Context, refreshToken string) (*domain.TokenPair, error)

	// SignIn verifies an email/password credential and issues a token pair.
	SignIn(ctx context.Context, email, password string) (*domain.TokenPair, *domain.Identity, error)

	// SignOut revokes the provider-side session for the given access token.
	SignOut(ctx context.Context, accessToken string) error
}
