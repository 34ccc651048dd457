package service

import (
	"errors"
	"fmt"
)

// NotFoundError reports that GitHub authoritatively does not know the user.
// It is never masked by cached data.
type NotFoundError struct {
	UserName string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User not found in GitHub: %s", e.UserName)
}

// UpstreamError reports a failed upstream call that no cached summary could cover.
type UpstreamError struct {
	UserName string
	Cause    error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Error accessing GitHub API for user %s: %v", e.UserName, e.Cause)
}

// Unwrap returns the upstream failure.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUpstreamError reports whether err is or wraps an *UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
