// Package mail delivers outbound email over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/dtroode/storefront/internal/model"
)

// dialer is the part of *gomail.Client the sender uses.
type dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

var _ model.Mailer = (*SMTPSender)(nil)

// SMTPSender sends messages through an SMTP relay.
type SMTPSender struct {
	client dialer
	from   string
}

// NewSMTPSender creates a sender authenticating with PLAIN when username is set.
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	c, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return NewSMTPSenderWithDialer(c, from), nil
}

// NewSMTPSenderWithDialer allows injecting a fake dialer (used in tests).
func NewSMTPSenderWithDialer(d dialer, from string) *SMTPSender {
	return &SMTPSender{client: d, from: from}
}

func (s *SMTPSender) Send(ctx context.Context, msg model.Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) buildMessage(msg model.Message) (*gomail.Msg, error) {
	from := msg.From
	if from == "" {
		from = s.from
	}

	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	return m, nil
}
