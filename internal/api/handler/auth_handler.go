package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user by phone and password and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		SessionID:   result.SessionID,
		User:        result.User,
		Degraded:    result.Degraded,
	})
}

// Register creates a new portal account. Admin-only; the password is hashed
// before it reaches storage.
//
// @Summary      Create a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  createUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.CreateUserInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		ClinicID: req.ClinicID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createUserResponse{User: *user})
}

// Logout clears the caller's session from every storage tier.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := ctxSessionID(c)
	if sid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
