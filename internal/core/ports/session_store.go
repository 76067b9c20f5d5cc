package ports

import (
	"context"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// SessionStore keeps server-trusted session records, addressed by the
// session cookie value. Records expire on their own; implementations must
// not return expired records.
type SessionStore interface {
	Put(ctx context.Context, rec domain.SessionRecord) error
	// Get returns (nil, nil) for an unknown or expired session id.
	Get(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}
