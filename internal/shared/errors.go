package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the caller's role or ownership does not permit the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNoSession occurs when a request reaches a service without an authenticated session.
	ErrNoSession = errors.New("no authenticated session")
)
