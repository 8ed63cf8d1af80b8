package cli

import (
	"errors"

	"github.com/sangkips/ddms-api/internal/client"
)

// reportedError marks an error the user has already been shown through
// the notifier.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// messageOf picks the most useful text for a failed API call.
func messageOf(err error, fallback string) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.As(err, &apiErr) && apiErr.Code != "":
		return apiErr.Code
	case errors.Is(err, client.ErrSessionExpired), errors.Is(err, client.ErrAuthenticationRequired):
		return err.Error()
	}
	return fallback
}
