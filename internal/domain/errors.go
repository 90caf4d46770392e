package domain

import "errors"

var (
	// ErrInvalidRequest marks a missing or malformed field the client can correct.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSessionNotFound is returned for operations on a session that is not live.
	ErrSessionNotFound = errors.New("session not found")
	// ErrForbidden is returned when the caller is neither owner nor viewer of a session.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream wraps failures of the assistant or attachment processing.
	ErrUpstream = errors.New("upstream failure")

	ErrUserIDEmpty   = errors.New("user id empty")
	ErrUserIDTooLong = errors.New("user id too long")
)
