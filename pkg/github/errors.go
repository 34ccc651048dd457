package github

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorClass represents a classification of upstream failures.
type ErrorClass string

const (
	// ErrorClassNotFound represents an authoritative 404 from upstream.
	ErrorClassNotFound ErrorClass = "not_found"

	// ErrorClassClient represents any other 4xx response.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport errors, timeouts and undecodable bodies.
	ErrorClassNetwork ErrorClass = "network"
)

// AccessError tags a failed upstream call with the user it was made for.
type AccessError struct {
	UserName   string
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *AccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("github %s error for user %s (status %d): %s: %v",
			e.ErrorClass, e.UserName, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("github %s error for user %s (status %d): %s",
		e.ErrorClass, e.UserName, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *AccessError) Unwrap() error {
	return e.Err
}

// NotFound reports whether upstream answered 404.
func (e *AccessError) NotFound() bool {
	return e.ErrorClass == ErrorClassNotFound
}

// IsNotFound reports whether err carries an upstream 404.
func IsNotFound(err error) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr) && accessErr.NotFound()
}

// classifyStatus maps a non-2xx status code to an error class.
// Only 404 is special; 403 and 429 are deliberately treated like any other 4xx.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == http.StatusNotFound:
		return ErrorClassNotFound
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		// Unexpected 1xx/3xx that the transport did not follow.
		return ErrorClassServer
	}
}
