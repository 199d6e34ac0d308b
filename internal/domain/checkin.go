package domain

import (
	"context"
	"time"
)

// Check-in statuses returned by CheckinService.Redeem.
const (
	StatusCheckedIn      = "checked_in"
	StatusAlreadyChecked = "already_checked"
)

// CheckinResult reports the outcome of a token redemption. CheckedInAt is
// the timestamp of the winning redemption regardless of which caller asks.
// swagger:model CheckinResult
type CheckinResult struct {
	Status      string    `json:"status"`
	GuestID     int64     `json:"guest_id"`
	Name        string    `json:"name"`
	EventID     int64     `json:"event_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// CheckinService is the redemption state machine. A guest moves from
// pending to checked in exactly once; every later redemption of the same
// token observes StatusAlreadyChecked with the original timestamp.
type CheckinService interface {
	// Redeem returns ErrInvalidToken for a token bound to no guest and
	// never mutates any guest in that case.
	Redeem(ctx context.Context, token string) (*CheckinResult, error)
}
