package auth

import (
	"strings"

	"github.com/emre/schoolhub/internal/app/models"
)

// Access is the requirement class a route gate rule imposes.
type Access int

const (
	// AccessPublic allows the request without authentication
	AccessPublic Access = iota
	// AccessAuthenticated requires any resolved principal
	AccessAuthenticated
	// AccessRole requires a resolved principal holding a specific role
	AccessRole
)

// DenyReason distinguishes route gate denials.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "UNAUTHENTICATED"
	DenyRoleMismatch    DenyReason = "ROLE_MISMATCH"
)

// Rule maps a path pattern to an access requirement. Patterns are either an
// exact path or a prefix followed by "/**".
type Rule struct {
	Pattern string
	Access  Access
	Role    models.RoleType // only meaningful when Access == AccessRole
}

// Decision is the outcome of a route gate check. RedirectToLogin is set for
// unauthenticated requests to non-public patterns; the boundary must send
// the caller to the sign-in entry point rather than proceed.
type Decision struct {
	Allowed         bool
	Reason          DenyReason
	RedirectToLogin bool
}

// RouteGate holds an ordered rule table. Matching is first-match, not
// best-match, so more specific patterns must precede general ones. Paths
// matched by no rule fall through to the any-authenticated default; the gate
// never default-allows.
type RouteGate struct {
	rules []Rule
}

// NewRouteGate creates a gate over the given ordered rules.
func NewRouteGate(rules []Rule) *RouteGate {
	return &RouteGate{rules: rules}
}

// DefaultRules is the rule table of the application, most specific first.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "/ping", Access: AccessPublic},
		{Pattern: "/healthz", Access: AccessPublic},
		{Pattern: "/api/v1/auth/**", Access: AccessPublic},
		{Pattern: "/api/v1/student/**", Access: AccessRole, Role: models.RoleStudent},
		{Pattern: "/api/v1/teacher/**", Access: AccessRole, Role: models.RoleTeacher},
		{Pattern: "/api/v1/teachers/**", Access: AccessRole, Role: models.RoleTeacher},
		{Pattern: "/api/v1/accounts/**", Access: AccessRole, Role: models.RoleTeacher},
	}
}

// Decide evaluates the gate for a request path and an optional principal.
// It is a pure function with no side effects.
func (g *RouteGate) Decide(path string, p *Principal) Decision {
	access := AccessAuthenticated // fail-closed default for unmatched paths
	var role models.RoleType

	for _, rule := range g.rules {
		if matchPattern(rule.Pattern, path) {
			access = rule.Access
			role = rule.Role
			break
		}
	}

	switch access {
	case AccessPublic:
		return Decision{Allowed: true}
	case AccessAuthenticated:
		if p == nil {
			return Decision{Reason: DenyUnauthenticated, RedirectToLogin: true}
		}
		return Decision{Allowed: true}
	default:
		if p == nil {
			return Decision{Reason: DenyUnauthenticated, RedirectToLogin: true}
		}
		if !p.Role.Valid() || p.Role != role {
			return Decision{Reason: DenyRoleMismatch}
		}
		return Decision{Allowed: true}
	}
}

// matchPattern matches a request path against a rule pattern. "/prefix/**"
// matches the prefix itself and everything below it; anything else is an
// exact match.
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
