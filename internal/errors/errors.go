package errors

import (
	"errors"
	"net/http"
)

// Error kinds. Every domain error carries exactly one of these.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a reference to a user or role that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks bad credentials or an invalid session token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain error with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the kind of e, so errors.Is(err, ErrNotFound)
// matches every not-found sentinel below.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	// ErrCredentialsRequired is returned when username or password is missing.
	ErrCredentialsRequired = newError(ErrValidation, "Username and password are required")
	// ErrUserUpdateRequired is returned when an update carries neither a new password nor a new username.
	ErrUserUpdateRequired = newError(ErrValidation, "New password or username is required for update")
	// ErrRoleNameRequired is returned when a role is created without a name.
	ErrRoleNameRequired = newError(ErrValidation, "Role name is required")
	// ErrRoleRenameRequired is returned when a rename lacks the role reference or the new name.
	ErrRoleRenameRequired = newError(ErrValidation, "Role name or ID and new role name are required")
	// ErrInvalidRoleID is returned when a role id is not an integer.
	ErrInvalidRoleID = newError(ErrValidation, "Invalid roleId")
	// ErrAssignmentRequired is returned when a user or role reference is missing.
	ErrAssignmentRequired = newError(ErrValidation, "User identifier and role identifier are required")
	// ErrRoleIdentifierRequired is returned when a role reference is missing.
	ErrRoleIdentifierRequired = newError(ErrValidation, "Role identifier is required")

	// ErrUsernameInUse is returned by signup when the username is taken.
	ErrUsernameInUse = newError(ErrConflict, "Username already in use")
	// ErrUsernameExists is returned by a username update when the new name is taken.
	ErrUsernameExists = newError(ErrConflict, "Username already exists")
	// ErrRoleExists is returned when a role name is taken.
	ErrRoleExists = newError(ErrConflict, "Role with this name already exists")

	// ErrUserNotFound is returned when a user reference resolves to nothing.
	ErrUserNotFound = newError(ErrNotFound, "User not found")
	// ErrRoleNotFound is returned when a role reference resolves to nothing.
	ErrRoleNotFound = newError(ErrNotFound, "Role not found")

	// ErrInvalidCredentials is returned for an unknown user and for a wrong password alike.
	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid username or password")
	// ErrInvalidToken is returned when a session token fails verification.
	ErrInvalidToken = newError(ErrUnauthorized, "Invalid token")
	// ErrSessionRequired is returned when a protected route is called without a valid session.
	ErrSessionRequired = newError(ErrUnauthorized, "Unauthorized")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything that is not a
// domain error is reported as a 500 carrying fallback, never the cause.
func MapErrorToHTTP(err error, fallback string) *HTTPError {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return NewHTTPError(http.StatusInternalServerError, fallback)
	}

	switch {
	case errors.Is(err, ErrRoleExists), errors.Is(err, ErrUsernameExists):
		return NewHTTPError(http.StatusBadRequest, domainErr.Message)
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, domainErr.Message)
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, domainErr.Message)
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, domainErr.Message)
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, domainErr.Message)
	default:
		return NewHTTPError(http.StatusInternalServerError, fallback)
	}
}
