package token

import (
	"strings"

	"github.com/google/uuid"

	"guestgate/internal/domain"
)

type uuidIssuer struct{}

// NewIssuer returns a TokenIssuer producing 32-character lowercase hex
// tokens: a random UUID with the dashes stripped, ~122 bits of entropy.
func NewIssuer() domain.TokenIssuer {
	return uuidIssuer{}
}

// Issue panics only if the system randomness source is unavailable,
// which is a fatal environment error rather than a recoverable one.
func (uuidIssuer) Issue() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
