package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - every role except admin requires a clinic scope; without it the JWT is
//     structurally valid but operationally unusable — reject with 401.
func ctxIdentity(c echo.Context) (phone string, role domain.Role, clinicID *int64, err error) {
	roleStr, _ := c.Get("role").(string)
	if roleStr == "" {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role = domain.Role(roleStr)
	phone, _ = c.Get("phone").(string)

	if id, ok := c.Get("clinic_id").(int64); ok {
		clinicID = &id
	}
	if role != domain.RoleAdmin && clinicID == nil {
		return "", "", nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing clinic scope")
	}

	return phone, role, clinicID, nil
}

// ctxSessionID returns the session id claim set by the Auth middleware.
func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get("sid").(string)
	return sid
}

// searchScope resolves the clinic scope of a search: non-admin principals are
// always confined to their own clinic regardless of what they ask for; an
// admin may pass an explicit scope, or search all clinics with zero.
func searchScope(role domain.Role, clinicID *int64, requested int64) int64 {
	if role != domain.RoleAdmin && clinicID != nil {
		return *clinicID
	}
	return requested
}
