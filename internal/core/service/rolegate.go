package service

import "github.com/codefolio/portfolio-api/internal/core/domain"

// SessionReader is the read side of the session cache consumed by UI-level
// guards.
type SessionReader interface {
	Snapshot() SessionSnapshot
}

// RoleGate is a UI-level guard: it decides whether a restricted subtree may
// be shown to the current session. It is a UX convenience layer, not a
// security boundary; the edge access gate is the enforcement point.
//
// The gate trusts the role already resolved into the session snapshot and
// performs no profile lookup of its own.
type RoleGate struct {
	session SessionReader
	allowed map[domain.Role]struct{}
}

func NewRoleGate(session SessionReader, allowedRoles ...domain.Role) *RoleGate {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return &RoleGate{session: session, allowed: allowed}
}

// Admit reports whether the restricted content may be shown. While the
// session is still loading, or when no identity or no permitted role is
// resolved, the caller must render its fallback instead.
func (g *RoleGate) Admit() bool {
	snap := g.session.Snapshot()
	if snap.Loading || snap.Identity == nil {
		return false
	}
	_, ok := g.allowed[snap.Role]
	return ok
}
