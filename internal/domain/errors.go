package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when an event or guest lookup by id misses.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for blank required fields or a malformed email.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidToken is returned when a check-in token matches no guest.
	// Distinct from ErrNotFound so the gate never confuses an unknown
	// credential with an already redeemed one.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMisconfigured is returned per send when the mail transport is unset.
	ErrMisconfigured = errors.New("mail transport not configured")
	// ErrDispatchFailed wraps transport errors from a pass email send,
	// as opposed to internal failures around the send.
	ErrDispatchFailed = errors.New("pass dispatch failed")
	// ErrDuplicateToken is returned when a guest insert violates the token
	// unique constraint.
	ErrDuplicateToken = errors.New("duplicate guest token")
)
