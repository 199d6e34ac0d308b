package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"guestgate/internal/domain"
)

type checkinService struct {
	guestRepo      domain.GuestRepository
	contextTimeout time.Duration
}

// NewCheckinService creates the token redemption service.
func NewCheckinService(guestRepo domain.GuestRepository, timeout time.Duration) domain.CheckinService {
	return &checkinService{
		guestRepo:      guestRepo,
		contextTimeout: timeout,
	}
}

// Redeem claims the pending->checked transition with a single conditional
// write, so exactly one of any number of concurrent redemptions of the
// same token wins; every other caller reads the winner's timestamp.
func (s *checkinService) Redeem(ctx context.Context, token string) (*domain.CheckinResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now().UTC()
	// Two attempts: a claim can match zero rows while a read still shows
	// the guest pending when a concurrent claimant rolls back between the
	// two statements. One retry settles it.
	for attempt := 0; attempt < 2; attempt++ {
		guest, err := s.guestRepo.Checkin(ctx, token, now)
		if err == nil {
			return result(domain.StatusCheckedIn, guest), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("checkin guest: %w", err)
		}

		guest, err = s.guestRepo.GetByToken(ctx, token)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidToken
			}
			return nil, fmt.Errorf("get guest by token: %w", err)
		}
		if guest.CheckedInAt != nil {
			return result(domain.StatusAlreadyChecked, guest), nil
		}
	}
	return nil, fmt.Errorf("checkin did not settle for token %q", token)
}

func result(status string, guest *domain.Guest) *domain.CheckinResult {
	res := &domain.CheckinResult{
		Status:  status,
		GuestID: guest.ID,
		Name:    guest.Name,
		EventID: guest.EventID,
	}
	if guest.CheckedInAt != nil {
		res.CheckedInAt = *guest.CheckedInAt
	}
	return res
}
