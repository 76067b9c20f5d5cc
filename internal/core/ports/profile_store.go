package ports

import (
	"context"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// ProfileStore persists the identity-to-role mapping.
type ProfileStore interface {
	// GetRole looks up the role for an identity id. A missing profile is
	// reported as domain.ErrProfileNotFound, not as a default role.
	GetRole(ctx context.Context, identityID string) (domain.Role, error)

	// SetRole creates or replaces the profile for an identity id.
	SetRole(ctx context.Context, identityID string, role domain.Role) error
}
