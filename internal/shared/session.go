package shared

import (
	"github.com/nrng2025001/motorsync-sub002/internal/access"
)

// Session describes the authenticated actor for a single request. It is built
// once by the auth middleware and threaded through context into every service
// call; nothing in the codebase keeps a module-level current user.
type Session struct {
	UserID string
	Name   string
	Role   access.Role
	// Token is the bearer token presented by the caller. It is forwarded
	// verbatim on every upstream CRM request; refresh on expiry is the
	// identity provider's job, not ours.
	Token string
}

// Scope returns the visibility scope the session's role grants.
func (s *Session) Scope() access.Scope {
	if s == nil {
		return access.Scope{}
	}
	return access.ScopeFor(s.Role)
}
