package domain

// Session is the current authentication state of one portal client.
// Invariant: Principal is non-nil exactly when Token is non-empty; a record
// violating this is a partial session and must be treated as no session.
type Session struct {
	Principal *Principal `json:"principal"`
	Token     string     `json:"token"`
}

// Authenticated reports whether the session holds a complete principal+token pair.
func (s Session) Authenticated() bool {
	return s.Principal != nil && s.Token != ""
}

// Role returns the session's role, or the empty role when unauthenticated.
func (s Session) Role() Role {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.Role
}
