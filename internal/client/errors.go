package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationRequired means the request could not be made on
	// behalf of a logged-in user. The session has been cleared.
	ErrAuthenticationRequired = errors.New("Authentication required")
	// ErrSessionExpired means the access token could not be renewed. The
	// session has been cleared.
	ErrSessionExpired = errors.New("Session expired. Please login again.")
	// ErrForbidden is returned before any request when the current user
	// lacks the permission for an action.
	ErrForbidden = errors.New("Insufficient permissions")
)

// APIError is a DDMS error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "":
		return e.Code
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("An error occurred (HTTP %d)", e.StatusCode)
	}
}

// ErrorCode returns the DDMS error code carried by err, if any.
func ErrorCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func messageFor(err error, fallback string) string {
	if code := ErrorCode(err); code != "" {
		return code
	}
	return fallback
}
