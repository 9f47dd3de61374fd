package domain

// Well-known navigation targets.
const (
	PathRoot    = "/"
	PathHome    = "/home"
	PathLogin   = "/login"
	PathAdmin   = "/admin"
	DefaultHome = PathRoot
)

// ViewRequest is a navigation request as presented by the router collaborator:
// the requested path plus the roles allowed to see it. A nil RequiredRoles
// means any authenticated session may enter; Public marks views that need no
// session at all.
type ViewRequest struct {
	Path          string
	RequiredRoles RoleSet
	Public        bool
}

// Decision is the outcome of an authorization check. A role mismatch is never
// an error: it is a redirect to a safe target.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow is the positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// RedirectTo builds a redirect decision to the given target.
func RedirectTo(target string) Decision {
	return Decision{Redirect: target}
}
