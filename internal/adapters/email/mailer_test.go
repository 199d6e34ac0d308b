package email

import (
	"testing"

	"guestgate/config"
	"guestgate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_MisconfiguredFailsFast(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MailConfig
	}{
		{
			name: "no host",
			cfg: config.MailConfig{
				Provider:    "smtp",
				FromAddress: "gate@example.com",
			},
		},
		{
			name: "no from address",
			cfg: config.MailConfig{
				Provider: "smtp",
				SMTP:     config.SMTPConfig{Host: "smtp.example.com", Port: 587},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSMTPMailer(tt.cfg)
			err := m.Send("guest@example.com", "subject", "", "body", nil)
			require.ErrorIs(t, err, domain.ErrMisconfigured)
		})
	}
}

func TestNewMailer_UnknownProviderIsNoop(t *testing.T) {
	m, err := NewMailer(config.MailConfig{Provider: "carrier-pigeon"})
	require.NoError(t, err)
	require.NoError(t, m.Send("guest@example.com", "subject", "", "body", nil),
		"noop mailer must not fail")
}

func TestBuildRawMessage(t *testing.T) {
	attachment := domain.Attachment{
		Filename:    "qr_1.png",
		ContentType: "image/png",
		Content:     []byte{0x89, 'P', 'N', 'G'},
	}
	raw, err := buildRawMessage(
		"Guest Gate <gate@example.com>",
		"ana@x.com",
		"Your access QR",
		"<p>hello</p>",
		"hello",
		[]domain.Attachment{attachment},
	)
	require.NoError(t, err)
	msg := string(raw)
	for _, want := range []string{
		"From: Guest Gate <gate@example.com>",
		"To: ana@x.com",
		"multipart/mixed",
		"multipart/alternative",
		"text/plain; charset=UTF-8",
		"text/html; charset=UTF-8",
		`attachment; filename="qr_1.png"`,
		"base64",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, string(attachment.Content),
		"attachment bytes must be base64 encoded, not raw")
}

func TestTemplateRenderer_GuestPass(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.GuestPassEmailData{
		Email:     "ana@x.com",
		GuestName: "Ana",
		EventName: "Launch Party",
		Token:     "deadbeefdeadbeefdeadbeefdeadbeef",
	}

	for _, name := range []string{"guest_pass", "guest_pass_resend"} {
		subject, html, text, err := r.Render(name, data)
		require.NoError(t, err, "render %s", name)
		assert.Contains(t, subject, "Launch Party", "%s subject missing event name", name)
		for _, body := range []string{html, text} {
			assert.Contains(t, body, "Ana", "%s body missing guest name", name)
			assert.Contains(t, body, data.Token, "%s body missing token fallback", name)
		}
	}
}
