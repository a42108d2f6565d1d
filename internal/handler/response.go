package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rbacauth/internal/errors"
)

// MessageResponse is the body of a successful operation without data.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDResponse is the body of a role create or delete.
type IDResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// fail maps err to its HTTP status. Failures that surface as 500 are logged
// with their cause; the client only sees fallback.
func fail(c echo.Context, logger *zap.Logger, err error, fallback string) error {
	httpErr := errors.MapErrorToHTTP(err, fallback)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.Error(fallback,
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errors.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			switch msg := he.Message.(type) {
			case errors.ErrorResponse:
				body = msg
			case string:
				body = errors.ErrorResponse{Error: msg}
			default:
				body = errors.ErrorResponse{Error: http.StatusText(status)}
			}
		} else {
			logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}
