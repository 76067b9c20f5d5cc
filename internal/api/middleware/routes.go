package middleware

import (
	"strings"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

// RouteRule maps a path prefix to the roles permitted under it.
type RouteRule struct {
	Prefix string
	Roles  []domain.Role
}

// Allows reports whether the role is in the rule's allowed set.
func (r RouteRule) Allows(role domain.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// RouteTable is the static authorization decision surface: a public-route
// allowlist plus an ordered list of protected prefixes. Immutable at
// runtime; rule order defines precedence, the first matching prefix wins.
type RouteTable struct {
	public []string
	rules  []RouteRule
}

func NewRouteTable(public []string, rules []RouteRule) RouteTable {
	return RouteTable{public: public, rules: rules}
}

// DefaultRouteTable mirrors the site's layout: the admin surfaces require
// the admin role, everything on the public allowlist bypasses the gate.
func DefaultRouteTable() RouteTable {
	return NewRouteTable(
		[]string{
			"/", "/login", "/auth", "/unauthorized", "/blog", "/projects",
			"/api/auth", "/api/blog", "/api/projects",
			"/health", "/metrics", "/swagger",
		},
		[]RouteRule{
			{Prefix: "/admin", Roles: []domain.Role{domain.RoleAdmin}},
			{Prefix: "/api/admin", Roles: []domain.Role{domain.RoleAdmin}},
		},
	)
}

// Public reports whether the path equals, or is a sub-path of, a
// public-route entry. The root entry "/" only matches exactly, otherwise it
// would swallow every path.
func (t RouteTable) Public(path string) bool {
	for _, route := range t.public {
		if path == route {
			return true
		}
		if route != "/" && strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}

// Match returns the first rule whose prefix matches the path.
func (t RouteTable) Match(path string) (RouteRule, bool) {
	for _, rule := range t.rules {
		if path == rule.Prefix || strings.HasPrefix(path, rule.Prefix+"/") {
			return rule, true
		}
	}
	return RouteRule{}, false
}
