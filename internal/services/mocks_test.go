package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"guestgate/internal/domain"
)

type mockEventRepository struct {
	events    map[int64]*domain.Event
	createErr error
	getErr    error
	listErr   error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.events == nil {
		m.events = make(map[int64]*domain.Event)
	}
	event.ID = int64(len(m.events) + 1)
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Event
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, nil
}

// mockGuestRepository emulates the storage contract, including the
// atomicity of Checkin and the token unique constraint. Methods return
// copies the way row scans do.
type mockGuestRepository struct {
	mu            sync.Mutex
	nextID        int64
	byToken       map[string]*domain.Guest
	createErr     error
	markSentErr   error
	markSentCalls int
}

func newMockGuestRepository() *mockGuestRepository {
	return &mockGuestRepository{byToken: make(map[string]*domain.Guest)}
}

func (m *mockGuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.byToken[guest.Token]; ok {
		return domain.ErrDuplicateToken
	}
	m.nextID++
	guest.ID = m.nextID
	stored := *guest
	m.byToken[guest.Token] = &stored
	return nil
}

func (m *mockGuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.byToken {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGuestRepository) GetByToken(ctx context.Context, token string) (*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *mockGuestRepository) List(ctx context.Context, eventID *int64) ([]*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Guest
	for _, g := range m.byToken {
		if eventID != nil && g.EventID != *eventID {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockGuestRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markSentCalls++
	if m.markSentErr != nil {
		return m.markSentErr
	}
	for _, g := range m.byToken {
		if g.ID == id {
			g.SentAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockGuestRepository) Checkin(ctx context.Context, token string, at time.Time) (*domain.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byToken[token]
	if !ok || g.CheckedInAt != nil {
		return nil, domain.ErrNotFound
	}
	stamp := at
	g.CheckedInAt = &stamp
	cp := *g
	return &cp, nil
}

type mockTokenIssuer struct {
	mu     sync.Mutex
	n      int
	tokens []string // optional fixed sequence; repeats allowed
}

func (m *mockTokenIssuer) Issue() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	if len(m.tokens) > 0 {
		return m.tokens[(m.n-1)%len(m.tokens)]
	}
	return fmt.Sprintf("%032x", m.n)
}

type mockPassEncoder struct {
	renderErr error
}

func (m *mockPassEncoder) EncodePayload(token string) string {
	return "payload:" + token
}

func (m *mockPassEncoder) RenderPNG(payload string) ([]byte, error) {
	if m.renderErr != nil {
		return nil, m.renderErr
	}
	return []byte("png:" + payload), nil
}

type sentPass struct {
	to       string
	filename string
	resend   bool
}

type mockEmailService struct {
	mu      sync.Mutex
	sendErr error
	sent    []sentPass
}

func (m *mockEmailService) SendGuestPass(ctx context.Context, data *domain.GuestPassEmailData, png []byte, filename string) error {
	return m.record(data, filename, false)
}

func (m *mockEmailService) SendGuestPassResend(ctx context.Context, data *domain.GuestPassEmailData, png []byte, filename string) error {
	return m.record(data, filename, true)
}

func (m *mockEmailService) record(data *domain.GuestPassEmailData, filename string, resend bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentPass{to: data.Email, filename: filename, resend: resend})
	return nil
}
