package handler

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"rbacauth/internal/auth"
	"rbacauth/internal/errors"
	"rbacauth/internal/service"
)

const sessionContextKey = "session"

// RequireSession rejects requests without a valid session cookie and stores
// the verified claims for SessionClaims.
func RequireSession(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  sessionContextKey,
		TokenLookup: "cookie:" + auth.CookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.MapErrorToHTTP(errors.ErrSessionRequired, "")
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// SessionClaims returns the claims stored by RequireSession.
func SessionClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(sessionContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}
