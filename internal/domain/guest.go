package domain

import (
	"context"
	"time"
)

// Guest represents an invited guest. Token is the sole gate credential:
// generated once at creation, unique across all guests, never rotated.
// SentAt tracks the latest successful pass dispatch; CheckedInAt is set
// exactly once, on first redemption.
// swagger:model Guest
type Guest struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Token       string     `json:"token"`
	EventID     int64      `json:"event_id"`
	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at"`
	CheckedInAt *time.Time `json:"checked_in_at"`
}

// NewGuest returns a new Guest. ID is set by the repository on create.
func NewGuest(name, email, token string, eventID int64, createdAt time.Time) *Guest {
	return &Guest{
		Name:      name,
		Email:     email,
		Token:     token,
		EventID:   eventID,
		CreatedAt: createdAt,
	}
}

// GuestRepository defines the interface for guest storage.
type GuestRepository interface {
	// Create inserts the guest. Returns ErrDuplicateToken on a token
	// unique-constraint violation.
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id int64) (*Guest, error)
	GetByToken(ctx context.Context, token string) (*Guest, error)
	// List returns guests most recently created first, optionally
	// filtered by event.
	List(ctx context.Context, eventID *int64) ([]*Guest, error)
	// MarkSent records a successful pass dispatch. Re-set on every resend.
	MarkSent(ctx context.Context, id int64, at time.Time) error
	// Checkin atomically flips checked_in_at from NULL to at for the guest
	// with the given token and returns the updated guest. Returns
	// ErrNotFound when no pending guest holds the token, i.e. the token is
	// unknown or the guest is already checked in. The condition and the
	// write must be a single statement; callers rely on at most one caller
	// ever winning per token.
	Checkin(ctx context.Context, token string, at time.Time) (*Guest, error)
}

// ImportRow is one row of a bulk guest import, parsed at the boundary.
type ImportRow struct {
	Name  string
	Email string
}

// ImportResult reports what a bulk import did. Rows missing name or email
// are skipped by policy; rows that fail on insert are counted as failed
// and do not abort the rest of the import.
type ImportResult struct {
	Created []*Guest `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
}

// GuestService defines guest-facing business operations.
type GuestService interface {
	// CreateGuest validates the event exists, issues a token, persists the
	// guest, and best-effort dispatches the pass email. Dispatch failures
	// never fail the creation.
	CreateGuest(ctx context.Context, eventID int64, name, email string) (*Guest, error)
	ImportGuests(ctx context.Context, eventID int64, rows []ImportRow) (*ImportResult, error)
	GetGuest(ctx context.Context, id int64) (*Guest, error)
	FindByToken(ctx context.Context, token string) (*Guest, error)
	ListGuests(ctx context.Context, eventID *int64) ([]*Guest, error)
	// ResendPass regenerates the pass image from the stored token and
	// re-sends it. Unlike creation, dispatch errors are returned.
	ResendPass(ctx context.Context, guestID int64) (*Guest, error)
	// PassPNG renders the guest's scannable pass for direct retrieval.
	PassPNG(ctx context.Context, guestID int64) ([]byte, error)
}

// TokenIssuer issues opaque guest access tokens. Implementations must
// draw from a space large enough that practical collision cannot occur;
// uniqueness is ultimately enforced by the guest storage constraint.
type TokenIssuer interface {
	Issue() string
}

// PassEncoder turns a guest token into the exact scan payload string and
// renders that string as a still PNG image. Both operations are pure:
// the same token and configuration always produce identical output, so
// the image can be regenerated on demand instead of persisted.
type PassEncoder interface {
	EncodePayload(token string) string
	RenderPNG(payload string) ([]byte, error)
}
