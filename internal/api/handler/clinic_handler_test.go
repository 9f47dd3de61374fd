package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

type stubDirectoryService struct {
	clinic *domain.Clinic
	err    error
}

func (s *stubDirectoryService) CurrentClinic(_ context.Context, _ domain.Session) (*domain.Clinic, error) {
	return s.clinic, s.err
}

func clinicContext(e *echo.Echo, sid string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/clinic/current", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sid != "" {
		c.Set("sid", sid)
	}
	return c, rec
}

func TestClinicHandler_Current(t *testing.T) {
	e := echo.New()
	store := &stubSessionStore{sessions: map[string]domain.Session{
		"sid-1": {Principal: &domain.Principal{ID: 1, Role: domain.RoleDoctor}, Token: "token-1"},
	}}
	directory := &stubDirectoryService{clinic: &domain.Clinic{ID: 3, Name: "Downtown Branch", Active: true}}
	handler := NewClinicHandler(directory, store)

	c, rec := clinicContext(e, "sid-1")
	if err := handler.Current(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var clinic domain.Clinic
	if err := json.Unmarshal(rec.Body.Bytes(), &clinic); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if clinic.ID != 3 || clinic.Name != "Downtown Branch" {
		t.Fatalf("unexpected clinic: %+v", clinic)
	}
}

func TestClinicHandler_Current_FallsBackToDefault(t *testing.T) {
	e := echo.New()
	store := &stubSessionStore{sessions: map[string]domain.Session{}}
	directory := &stubDirectoryService{err: domain.ErrClinicNotFound}
	handler := NewClinicHandler(directory, store)

	c, rec := clinicContext(e, "sid-1")
	if err := handler.Current(c); err != nil {
		t.Fatalf("unresolvable clinic must not be an error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var clinic domain.Clinic
	if err := json.Unmarshal(rec.Body.Bytes(), &clinic); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if clinic.Name != domain.DefaultClinic().Name {
		t.Fatalf("expected the default clinic identity, got %+v", clinic)
	}
}

func TestClinicHandler_Current_MissingSession(t *testing.T) {
	e := echo.New()
	handler := NewClinicHandler(&stubDirectoryService{}, &stubSessionStore{sessions: map[string]domain.Session{}})

	c, _ := clinicContext(e, "")
	err := handler.Current(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
