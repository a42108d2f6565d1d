package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rbacauth/internal/model"
	"rbacauth/internal/service"
)

// RoleHandler handles role and role-assignment endpoints.
type RoleHandler struct {
	roles     service.RoleService
	userRoles service.UserRoleService
	logger    *zap.Logger
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(roles service.RoleService, userRoles service.UserRoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{roles: roles, userRoles: userRoles, logger: logger}
}

// CreateRoleRequest represents a role creation request.
type CreateRoleRequest struct {
	RoleName string `json:"roleName" form:"roleName"`
}

// RenameRoleRequest represents a role rename. RoleName may hold the role id
// or its current name; the path parameter is used when it is absent.
type RenameRoleRequest struct {
	RoleName    model.Identifier `json:"roleName" swaggertype:"string"`
	NewRoleName string           `json:"newRoleName"`
}

// AssignmentRequest references a user and a role by id or name. Path
// parameters are used for absent fields.
type AssignmentRequest struct {
	Identifier     model.Identifier `json:"identifier" swaggertype:"string"`
	RoleIdentifier model.Identifier `json:"roleIdentifier" swaggertype:"string"`
}

// RoleUsersRequest references a role by id or name.
type RoleUsersRequest struct {
	RoleIdentifier model.Identifier `json:"roleIdentifier" swaggertype:"string"`
}

// RolesResponse lists roles.
type RolesResponse struct {
	Roles []model.Role `json:"roles"`
}

// RoleResponse wraps a single role.
type RoleResponse struct {
	Role *model.Role `json:"role"`
}

// UsersResponse lists users.
type UsersResponse struct {
	Users []model.User `json:"users"`
}

// ListRoles godoc
// @Summary List all roles
// @Tags roles
// @Produce json
// @Success 200 {object} RolesResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/all-roles [get]
func (h *RoleHandler) ListRoles(c echo.Context) error {
	roles, err := h.roles.ListRoles(c.Request().Context())
	if err != nil {
		return fail(c, h.logger, err, "Error fetching roles")
	}
	if roles == nil {
		roles = []model.Role{}
	}
	return c.JSON(http.StatusOK, RolesResponse{Roles: roles})
}

// CreateRole godoc
// @Summary Create a role
// @Tags roles
// @Accept json
// @Produce json
// @Param request body CreateRoleRequest true "Role name"
// @Success 200 {object} IDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role [post]
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role, err := h.roles.CreateRole(c.Request().Context(), req.RoleName)
	if err != nil {
		return fail(c, h.logger, err, "Error during role creation")
	}
	return c.JSON(http.StatusOK, IDResponse{ID: role.ID, Message: "Role created successfully"})
}

// GetRole godoc
// @Summary Get a role by id or name
// @Tags roles
// @Produce json
// @Param roleId path string true "Role ID or name"
// @Success 200 {object} RoleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/{roleId} [get]
func (h *RoleHandler) GetRole(c echo.Context) error {
	role, err := h.roles.GetRole(c.Request().Context(), model.ParseIdentifier(c.Param("roleId")))
	if err != nil {
		return fail(c, h.logger, err, "Error fetching role")
	}
	return c.JSON(http.StatusOK, RoleResponse{Role: role})
}

// RenameRole godoc
// @Summary Rename a role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleId path string true "Role ID or name"
// @Param request body RenameRoleRequest true "Current and new role name"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/{roleId} [post]
func (h *RoleHandler) RenameRole(c echo.Context) error {
	var req RenameRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ident := req.RoleName.Or(model.ParseIdentifier(c.Param("roleId")))
	if _, err := h.roles.RenameRole(c.Request().Context(), ident, req.NewRoleName); err != nil {
		return fail(c, h.logger, err, "Error during role update")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Role updated successfully"})
}

// DeleteRole godoc
// @Summary Delete a role
// @Tags roles
// @Produce json
// @Param roleId path int true "Role ID"
// @Success 200 {object} IDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/{roleId} [delete]
func (h *RoleHandler) DeleteRole(c echo.Context) error {
	id, err := h.roles.DeleteRole(c.Request().Context(), c.Param("roleId"))
	if err != nil {
		return fail(c, h.logger, err, "Error during role deletion by ID")
	}
	return c.JSON(http.StatusOK, IDResponse{ID: id, Message: "Role deleted successfully"})
}

// AssignRole godoc
// @Summary Assign a user to a role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleId path string true "Role ID or name"
// @Param userId path string true "User ID or username"
// @Param request body AssignmentRequest false "User and role references"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/{roleId}/{userId} [post]
func (h *RoleHandler) AssignRole(c echo.Context) error {
	user, role, err := bindAssignment(c)
	if err != nil {
		return err
	}

	if err := h.userRoles.AssignRole(c.Request().Context(), user, role); err != nil {
		return fail(c, h.logger, err, "Error assigning user to role")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User assigned to role successfully"})
}

// ListRoleUsers godoc
// @Summary List users holding a role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleId path string true "Role ID or name"
// @Param request body RoleUsersRequest false "Role reference"
// @Success 200 {object} UsersResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/{roleId}/users [get]
func (h *RoleHandler) ListRoleUsers(c echo.Context) error {
	var req RoleUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role := req.RoleIdentifier.Or(model.ParseIdentifier(c.Param("roleId")))
	users, err := h.userRoles.ListUsersByRole(c.Request().Context(), role)
	if err != nil {
		return fail(c, h.logger, err, "Error retrieving users by role")
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, UsersResponse{Users: users})
}

// UnassignRole godoc
// @Summary Remove a user from a role
// @Tags roles
// @Accept json
// @Produce json
// @Param roleId path string true "Role ID or name"
// @Param userId path string true "User ID or username"
// @Param request body AssignmentRequest false "User and role references"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /role/{roleId}/{userId} [delete]
func (h *RoleHandler) UnassignRole(c echo.Context) error {
	user, role, err := bindAssignment(c)
	if err != nil {
		return err
	}

	if err := h.userRoles.UnassignRole(c.Request().Context(), user, role); err != nil {
		return fail(c, h.logger, err, "Error removing user from role")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User removed from role successfully"})
}

func bindAssignment(c echo.Context) (model.Identifier, model.Identifier, error) {
	var req AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return model.Identifier{}, model.Identifier{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	user := req.Identifier.Or(model.ParseIdentifier(c.Param("userId")))
	role := req.RoleIdentifier.Or(model.ParseIdentifier(c.Param("roleId")))
	return user, role, nil
}
