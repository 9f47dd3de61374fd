package handler

import "github.com/dentalcare/clinic-portal/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"     validate:"required"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"required,oneof=admin doctor nurse registrar patient"`
	ClinicID *int64 `json:"clinic_id"`
}

type createUserResponse struct {
	User domain.Principal `json:"user"`
}

type loginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	SessionID   string           `json:"session_id"`
	User        domain.Principal `json:"user"`
	// Degraded warns that the session only reached the non-durable tier
	// and may not survive a reload.
	Degraded bool `json:"degraded,omitempty"`
}

type navResolveResponse struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

type searchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []domain.SearchResult `json:"results"`
}
