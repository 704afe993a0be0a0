package upstream

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized indicates a request was attempted without a usable
	// bearer token. Dependent calls abort before touching the network.
	ErrUnauthorized = errors.New("upstream: unauthorized")
	// ErrOutOfStock marks a conversion rejected by the backend's stock check.
	ErrOutOfStock = errors.New("upstream: requested vehicle out of stock")
)

// APIError is a backend response that indicated failure, either via HTTP
// status or a success:false envelope. Message carries the backend's own text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// NetworkError is a request that never produced a backend response. It is
// retryable, but only by explicit user action; the client never retries.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MentionsStock reports whether a backend failure message indicates a stock
// constraint. The backend phrases this several ways; substring match on
// "stock" is the observed common denominator.
func MentionsStock(message string) bool {
	return strings.Contains(strings.ToLower(message), "stock")
}
