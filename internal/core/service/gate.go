package service

import (
	"strings"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// route binds a path (exact or prefix) to its access requirement.
type route struct {
	path   string
	prefix bool
	public bool
	roles  domain.RoleSet // nil = any authenticated session
}

// Gate decides which views a session may reach. It is a pure function of
// (view, session): the decision is recomputed on every navigation, never
// cached, since the session can change between navigations without a reload.
type Gate struct {
	routes []route
}

// NewGate builds the gate with the portal's view table.
func NewGate() *Gate {
	return &Gate{routes: []route{
		{path: domain.PathHome, public: true},
		{path: domain.PathLogin, public: true},
		{path: domain.PathAdmin, roles: domain.Roles(domain.RoleAdmin)},
		{path: "/clinic/", prefix: true, roles: domain.Roles(domain.RoleAdmin)},
		{path: "/doctor", roles: domain.Roles(domain.RoleDoctor, domain.RoleNurse)},
		{path: "/patients", roles: domain.Roles(domain.RoleRegistrar, domain.RolePatient)},
		{path: "/patient/", prefix: true, roles: domain.Roles(domain.RoleDoctor, domain.RoleNurse, domain.RoleAdmin, domain.RolePatient)},
		{path: "/treatment-orders", prefix: true, roles: domain.Roles(domain.RoleDoctor, domain.RoleNurse, domain.RoleAdmin)},
	}}
}

// Resolve maps a requested path to its ViewRequest. Unknown paths require any
// authenticated session.
func (g *Gate) Resolve(path string) domain.ViewRequest {
	for _, r := range g.routes {
		if r.prefix {
			if strings.HasPrefix(path, r.path) {
				return domain.ViewRequest{Path: path, RequiredRoles: r.roles, Public: r.public}
			}
			continue
		}
		if path == r.path {
			return domain.ViewRequest{Path: path, RequiredRoles: r.roles, Public: r.public}
		}
	}
	return domain.ViewRequest{Path: path}
}

// Authorize decides whether the session may render the requested view.
//
// The root path resolves dynamically: an unauthenticated visitor sees the
// public landing view, an authenticated admin is sent to the admin view, and
// every other authenticated role lands on the landing view. Only admin has a
// distinct home.
func (g *Gate) Authorize(view domain.ViewRequest, session domain.Session) domain.Decision {
	if view.Path == domain.PathRoot {
		if session.Authenticated() && session.Role() == domain.RoleAdmin {
			return domain.RedirectTo(domain.PathAdmin)
		}
		return domain.Allow()
	}

	if view.Public {
		return domain.Allow()
	}

	if !session.Authenticated() {
		return domain.RedirectTo(domain.PathLogin)
	}

	if view.RequiredRoles != nil && !view.RequiredRoles.Contains(session.Role()) {
		return domain.RedirectTo(domain.DefaultHome)
	}

	return domain.Allow()
}
