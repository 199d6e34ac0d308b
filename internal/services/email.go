package services

import (
	"context"
	"fmt"

	"guestgate/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendGuestPass sends the pass email using the "guest_pass" template with the rendered QR attached.
func (s *emailService) SendGuestPass(ctx context.Context, data *domain.GuestPassEmailData, png []byte, filename string) error {
	return s.send("guest_pass", data, png, filename)
}

// SendGuestPassResend sends the pass again using the "guest_pass_resend" template.
func (s *emailService) SendGuestPassResend(ctx context.Context, data *domain.GuestPassEmailData, png []byte, filename string) error {
	return s.send("guest_pass_resend", data, png, filename)
}

func (s *emailService) send(templateName string, data *domain.GuestPassEmailData, png []byte, filename string) error {
	if data == nil {
		return fmt.Errorf("guest pass email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	attachments := []domain.Attachment{{
		Filename:    filename,
		ContentType: "image/png",
		Content:     png,
	}}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody, attachments); err != nil {
		return fmt.Errorf("failed to send guest pass email: %w", err)
	}
	return nil
}
