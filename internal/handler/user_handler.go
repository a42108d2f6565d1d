package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rbacauth/internal/auth"
	"rbacauth/internal/service"
)

// UserHandler handles account maintenance endpoints.
type UserHandler struct {
	svc          service.UserService
	secureCookie bool
	logger       *zap.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, secureCookie bool, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, secureCookie: secureCookie, logger: logger}
}

// UpdateUserRequest carries the optional new password and username.
type UpdateUserRequest struct {
	NewPassword string `json:"newPassword" form:"newPassword"`
	NewUsername string `json:"newUsername" form:"newUsername"`
}

// UpdateUser godoc
// @Summary Update password and/or username
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /update/{username} [post]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.svc.UpdateUser(c.Request().Context(), c.Param("username"), service.UserUpdate{
		NewPassword: req.NewPassword,
		NewUsername: req.NewUsername,
	})
	if err != nil {
		return fail(c, h.logger, err, "Error during update")
	}

	c.SetCookie(auth.NewSessionCookie(session.Token, h.secureCookie))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Update successful"})
}

// DeleteUser godoc
// @Summary Delete an account
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /delete/{username} [post]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		token = cookie.Value
	}

	if err := h.svc.DeleteUser(c.Request().Context(), c.Param("username"), token); err != nil {
		return fail(c, h.logger, err, "Error during delete")
	}

	c.SetCookie(auth.ClearSessionCookie(h.secureCookie))
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
