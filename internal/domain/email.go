package domain

import "context"

// Attachment is a binary part attached to an outbound email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string, attachments []Attachment) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// GuestPassEmailData holds data for the guest pass email.
type GuestPassEmailData struct {
	Email     string
	GuestName string
	EventName string
	Token     string
}

// EmailService defines the contract for sending domain-level emails.
// Errors are reported to the caller; whether a failure is fatal is the
// caller's policy, never the dispatcher's.
type EmailService interface {
	SendGuestPass(ctx context.Context, data *GuestPassEmailData, png []byte, filename string) error
	SendGuestPassResend(ctx context.Context, data *GuestPassEmailData, png []byte, filename string) error
}
