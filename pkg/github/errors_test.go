package github

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorClass
	}{
		{404, ErrorClassNotFound},
		{400, ErrorClassClient},
		{403, ErrorClassClient},
		{429, ErrorClassClient},
		{500, ErrorClassServer},
		{502, ErrorClassServer},
		{503, ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			if got := classifyStatus(tt.status); got != tt.expected {
				t.Errorf("classifyStatus(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestAccessError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AccessError
		expected string
	}{
		{
			name: "with wrapped error",
			err: &AccessError{
				UserName:   "octocat",
				ErrorClass: ErrorClassNetwork,
				Message:    "user: request failed",
				Err:        errors.New("connection refused"),
			},
			expected: "github network error for user octocat (status 0): user: request failed: connection refused",
		},
		{
			name: "without wrapped error",
			err: &AccessError{
				UserName:   "ghost",
				StatusCode: 404,
				ErrorClass: ErrorClassNotFound,
				Message:    "404 Not Found",
			},
			expected: "github not_found error for user ghost (status 404): 404 Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAccessError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := &AccessError{UserName: "flaky", ErrorClass: ErrorClassNetwork, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := &AccessError{UserName: "ghost", StatusCode: 404, ErrorClass: ErrorClassNotFound}
	server := &AccessError{UserName: "flaky", StatusCode: 500, ErrorClass: ErrorClassServer}

	if !IsNotFound(notFound) {
		t.Error("IsNotFound should be true for 404")
	}
	if !IsNotFound(fmt.Errorf("wrapped: %w", notFound)) {
		t.Error("IsNotFound should see through wrapping")
	}
	if IsNotFound(server) {
		t.Error("IsNotFound should be false for 500")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound should be false for unrelated errors")
	}
}
