package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials indicates provider credentials are absent.
	// Fatal at startup: nothing works without them.
	ErrMissingCredentials = errors.New("missing provider credentials")

	// ErrProviderUnreachable indicates a network-level failure reaching the provider
	ErrProviderUnreachable = errors.New("provider unreachable")

	// ErrCacheMiss indicates the location cache store holds no record
	ErrCacheMiss = errors.New("location cache not populated")

	// ErrNoResults indicates a well-formed response with zero usable records.
	// Informational, not a fault.
	ErrNoResults = errors.New("no keyword volume results")

	// ErrNoKeywords indicates the keyword list is empty after trimming
	ErrNoKeywords = errors.New("no keywords provided after trimming")

	// ErrInvalidLocation indicates a missing or invalid location selection
	ErrInvalidLocation = errors.New("invalid location selection")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// APIError represents a non-success response from the provider.
// Status code and body are preserved so they can be reported verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error: HTTP %d - %s", e.StatusCode, e.Body)
}

// NewAPIError creates an APIError from a provider response
func NewAPIError(statusCode int, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Body:       body,
	}
}

// AsAPIError unwraps err into an APIError if one is in the chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
