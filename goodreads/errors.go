package goodreads

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid goodreads configuration")
	// ErrUnauthenticated indicates an operation that needs an OAuth session was called without one
	ErrUnauthenticated = errors.New("no authenticated session")
	// ErrInvalidState indicates an OAuth step was called out of order
	ErrInvalidState = errors.New("invalid oauth session state")
	// ErrInvalidResponse indicates the API returned a body that could not be parsed or lacks an expected element
	ErrInvalidResponse = errors.New("invalid response from Goodreads API")
	// ErrDetached indicates a follow-up call on an entity that was built without a client
	ErrDetached = errors.New("entity is not attached to a client")
)

// ArgumentError reports a missing or invalid argument. It is returned before any
// request is made.
type ArgumentError struct {
	Op     string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("goodreads %s: %s", e.Op, e.Reason)
}

// APIError represents a non-success response from the Goodreads API
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("goodreads API error: %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// OAuthError reports a handshake step rejected by the provider.
type OAuthError struct {
	Step string
	Err  error
}

func (e *OAuthError) Error() string {
	return fmt.Sprintf("goodreads oauth %s failed: %v", e.Step, e.Err)
}

func (e *OAuthError) Unwrap() error {
	return e.Err
}
