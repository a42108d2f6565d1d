package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rbacauth/internal/auth"
	"rbacauth/internal/errors"
	"rbacauth/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie Secure.
func NewAuthHandler(authService service.AuthService, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie, logger: logger}
}

// CredentialsRequest represents a signup or login request.
type CredentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignupResponse represents a successful signup.
type SignupResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// LoginUser is the user summary returned by login.
type LoginUser struct {
	Username string `json:"username"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// MeResponse carries the username of the current session.
type MeResponse struct {
	Username string `json:"username"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Signup data"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, errors.ErrCredentialsRequired, "")
	}

	session, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, h.logger, err, "Error during registration")
	}

	c.SetCookie(auth.NewSessionCookie(session.Token, h.secureCookie))
	return c.JSON(http.StatusOK, SignupResponse{
		Message:  "Signup successful",
		Username: session.Username,
		Token:    session.Token,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, h.logger, errors.ErrCredentialsRequired, "")
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return fail(c, h.logger, err, "Error during login")
	}

	c.SetCookie(auth.NewSessionCookie(session.Token, h.secureCookie))
	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    LoginUser{Username: session.Username},
	})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the session cookie and redirects to /.
// @Tags auth
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	c.SetCookie(auth.ClearSessionCookie(h.secureCookie))
	return c.Redirect(http.StatusFound, "/")
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := SessionClaims(c)
	if !ok {
		return fail(c, h.logger, errors.ErrSessionRequired, "")
	}
	return c.JSON(http.StatusOK, MeResponse{Username: claims.Username})
}
