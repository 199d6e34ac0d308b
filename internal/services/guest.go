package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"guestgate/internal/domain"
)

type guestService struct {
	guestRepo      domain.GuestRepository
	eventRepo      domain.EventRepository
	tokens         domain.TokenIssuer
	passes         domain.PassEncoder
	emails         domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewGuestService creates a GuestService with the given repositories and
// collaborators.
func NewGuestService(
	guestRepo domain.GuestRepository,
	eventRepo domain.EventRepository,
	tokens domain.TokenIssuer,
	passes domain.PassEncoder,
	emails domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.GuestService {
	return &guestService{
		guestRepo:      guestRepo,
		eventRepo:      eventRepo,
		tokens:         tokens,
		passes:         passes,
		emails:         emails,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *guestService) CreateGuest(ctx context.Context, eventID int64, name, email string) (*domain.Guest, error) {
	event, guest, err := s.createOne(ctx, eventID, name, email)
	if err != nil {
		return nil, err
	}

	// Dispatch runs on the request context, after the insert committed:
	// a slow or failing send never holds anything open on the registry,
	// and the guest stays valid either way.
	if err := s.dispatchPass(ctx, guest, event, false); err != nil {
		s.logger.Warn("guest pass dispatch failed",
			"guest_id", guest.ID, "event_id", event.ID, "err", err)
	}
	return guest, nil
}

func (s *guestService) ImportGuests(ctx context.Context, eventID int64, rows []domain.ImportRow) (*domain.ImportResult, error) {
	tctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	event, err := s.eventRepo.GetByID(tctx, eventID)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	result := &domain.ImportResult{Created: []*domain.Guest{}}
	for i, row := range rows {
		// Rows missing name or email are skipped by policy, not errors.
		if strings.TrimSpace(row.Name) == "" || strings.TrimSpace(row.Email) == "" {
			result.Skipped++
			continue
		}
		_, guest, err := s.createOne(ctx, eventID, row.Name, row.Email)
		if err != nil {
			// A failed row (malformed email, duplicate token) must not
			// abort the rows already created or still pending.
			result.Failed++
			s.logger.Error("guest import row failed",
				"event_id", eventID, "row", i, "email", row.Email, "err", err)
			continue
		}
		if err := s.dispatchPass(ctx, guest, event, false); err != nil {
			s.logger.Warn("guest pass dispatch failed",
				"guest_id", guest.ID, "event_id", event.ID, "err", err)
		}
		result.Created = append(result.Created, guest)
	}
	return result, nil
}

// createOne validates, issues a token, and persists a single guest.
func (s *guestService) createOne(ctx context.Context, eventID int64, name, email string) (*domain.Event, *domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, nil, domain.ErrInvalidInput
	}

	guest := domain.NewGuest(name, email, s.tokens.Issue(), eventID, time.Now().UTC())
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		if errors.Is(err, domain.ErrDuplicateToken) {
			return nil, nil, domain.ErrDuplicateToken
		}
		return nil, nil, fmt.Errorf("create guest: %w", err)
	}
	return event, guest, nil
}

func (s *guestService) GetGuest(ctx context.Context, id int64) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return guest, nil
}

func (s *guestService) FindByToken(ctx context.Context, token string) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	guest, err := s.guestRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest by token: %w", err)
	}
	return guest, nil
}

func (s *guestService) ListGuests(ctx context.Context, eventID *int64) ([]*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	guests, err := s.guestRepo.List(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	return guests, nil
}

func (s *guestService) ResendPass(ctx context.Context, guestID int64) (*domain.Guest, error) {
	tctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	guest, err := s.guestRepo.GetByID(tctx, guestID)
	if err == nil {
		var event *domain.Event
		event, err = s.eventRepo.GetByID(tctx, guest.EventID)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("get event: %w", err)
		}
		// Resend is an explicit operator action: unlike creation,
		// dispatch failures surface to the caller.
		if err := s.dispatchPass(ctx, guest, event, true); err != nil {
			return nil, err
		}
		return guest, nil
	}
	cancel()
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	return nil, fmt.Errorf("get guest: %w", err)
}

func (s *guestService) PassPNG(ctx context.Context, guestID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	png, err := s.passes.RenderPNG(s.passes.EncodePayload(guest.Token))
	if err != nil {
		return nil, fmt.Errorf("render pass: %w", err)
	}
	return png, nil
}

// dispatchPass renders the pass image, sends it, and records sent_at in a
// separate update after the send completed. Updating sent_at is itself
// best-effort: the send already happened.
func (s *guestService) dispatchPass(ctx context.Context, guest *domain.Guest, event *domain.Event, resend bool) error {
	png, err := s.passes.RenderPNG(s.passes.EncodePayload(guest.Token))
	if err != nil {
		return fmt.Errorf("render pass: %w", err)
	}
	data := &domain.GuestPassEmailData{
		Email:     guest.Email,
		GuestName: guest.Name,
		EventName: event.Name,
		Token:     guest.Token,
	}
	filename := fmt.Sprintf("qr_%d.png", guest.ID)
	if resend {
		err = s.emails.SendGuestPassResend(ctx, data, png, filename)
	} else {
		err = s.emails.SendGuestPass(ctx, data, png, filename)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDispatchFailed, err)
	}

	now := time.Now().UTC()
	mctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.guestRepo.MarkSent(mctx, guest.ID, now); err != nil {
		s.logger.Warn("mark sent failed", "guest_id", guest.ID, "err", err)
		return nil
	}
	guest.SentAt = &now
	return nil
}
