package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is wrong.
	// Missing user and wrong password are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when a username already exists.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrGroupNameTaken is returned when a group name already exists.
	ErrGroupNameTaken = errors.New("group name is already taken")
	// ErrGroupNotFound is returned when a group is not found.
	ErrGroupNotFound = errors.New("group not found")
	// ErrMessageNotFound is returned when a message is not in its group.
	ErrMessageNotFound = errors.New("message not found")
	// ErrPermissionDenied is returned when a membership, ownership or role
	// check fails.
	ErrPermissionDenied = errors.New("permission denied")
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
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
	return ErrorResponse{Message: e.Message}
}

// MapToHTTP maps domain errors to HTTP errors carrying the exact wire
// messages of the API contract.
func MapToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, "Username is already taken")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrGroupNameTaken):
		return NewHTTPError(http.StatusBadRequest, "Group name is already taken")
	case errors.Is(err, ErrGroupNotFound):
		return NewHTTPError(http.StatusNotFound, "Group not found")
	case errors.Is(err, ErrMessageNotFound):
		return NewHTTPError(http.StatusNotFound, "Message not found")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, "Permission denied")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
}
