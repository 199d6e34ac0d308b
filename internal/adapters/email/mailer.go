package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	gomail "gopkg.in/gomail.v2"

	"guestgate/config"
	"guestgate/internal/domain"
)

// NewMailer creates a mailer from config. Provider "smtp" dials the
// configured SMTP transport, "ses" uses AWS SES; "noop" or unknown uses
// a no-op mailer. Missing transport settings are not an error here:
// the smtp mailer fails fast per send with domain.ErrMisconfigured.
func NewMailer(cfg config.MailConfig) (domain.Mailer, error) {
	switch cfg.Provider {
	case "smtp":
		return newSMTPMailer(cfg), nil
	case "ses":
		sesCfg := cfg.SES
		if sesCfg.InsecureSkipVerify {
			log.Printf("[MAILER] WARNING: TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesCfg.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesCfg.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesCfg.AccessKeyID,
					sesCfg.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
		}, nil
	case "noop":
		return &noopMailer{}, nil
	default:
		log.Printf("[MAILER] Unknown email provider %q, using noop", cfg.Provider)
		return &noopMailer{}, nil
	}
}

type smtpMailer struct {
	dialer      *gomail.Dialer
	host        string
	fromAddress string
	fromName    string
}

func newSMTPMailer(cfg config.MailConfig) *smtpMailer {
	d := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	d.SSL = cfg.SMTP.Port == 465
	if !cfg.SMTP.TLS {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS12}
	}
	return &smtpMailer{
		dialer:      d,
		host:        cfg.SMTP.Host,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}
}

func (m *smtpMailer) Send(to, subject, html, text string, attachments []domain.Attachment) error {
	if m.host == "" || m.fromAddress == "" {
		return domain.ErrMisconfigured
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if text != "" {
		msg.SetBody("text/plain", text)
	}
	if html != "" {
		if text != "" {
			msg.AddAlternative("text/html", html)
		} else {
			msg.SetBody("text/html", html)
		}
	}
	for _, a := range attachments {
		content := a.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		msg.Attach(a.Filename, settings...)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

// Send uses SendRawEmail because the SES simple API cannot carry
// attachments; the message is assembled as MIME in rawmime.go.
func (s *sesMailer) Send(to, subject, html, text string, attachments []domain.Attachment) error {
	source := s.fromAddress
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	raw, err := buildRawMessage(source, to, subject, html, text, attachments)
	if err != nil {
		return fmt.Errorf("build raw message: %w", err)
	}
	input := &ses.SendRawEmailInput{
		Source:       aws.String(source),
		Destinations: []string{to},
		RawMessage:   &types.RawMessage{Data: raw},
	}
	result, err := s.client.SendRawEmail(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	log.Printf("[MAILER] Email sent via SES. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}

type noopMailer struct{}

func (n *noopMailer) Send(to, subject, html, text string, attachments []domain.Attachment) error {
	log.Println("[MAILER] Email would be sent (noop)", "to", to, "subject", subject, "attachments", len(attachments))
	return nil
}
