package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"rbacauth/internal/handler"
	"rbacauth/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger *zap.Logger,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	roleHandler *handler.RoleHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// Session routes (require the token cookie)
	session := handler.RequireSession(authService)
	e.GET("/me", authHandler.Me, session)
	e.POST("/update/:username", userHandler.UpdateUser, session)
	e.POST("/delete/:username", userHandler.DeleteUser, session)

	// Role routes
	roles := e.Group("/role")
	roles.GET("/all-roles", roleHandler.ListRoles)
	roles.POST("", roleHandler.CreateRole)
	roles.GET("/:roleId", roleHandler.GetRole)
	roles.POST("/:roleId", roleHandler.RenameRole)
	roles.DELETE("/:roleId", roleHandler.DeleteRole)
	roles.GET("/:roleId/users", roleHandler.ListRoleUsers)
	roles.POST("/:roleId/:userId", roleHandler.AssignRole)
	roles.DELETE("/:roleId/:userId", roleHandler.UnassignRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
