package invitations

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailProvider sends invitation emails. Implementations are selected by
// configuration at startup.
type EmailProvider interface {
	SendInvitation(ctx context.Context, to, inviteURL string, message *string) error
}

// SendGridEmailProvider sends through the SendGrid v3 API.
type SendGridEmailProvider struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridEmailProvider(apiKey, fromEmail, fromName string) *SendGridEmailProvider {
	return &SendGridEmailProvider{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
}

func (p *SendGridEmailProvider) SendInvitation(ctx context.Context, to, inviteURL string, message *string) error {
	subject := "Vous êtes invité sur Mariable"

	body := fmt.Sprintf("Un couple souhaite travailler avec vous pour son mariage.\n\nAcceptez l'invitation ici : %s\n", inviteURL)
	if message != nil && *message != "" {
		body = fmt.Sprintf("%s\nMessage du couple : %s\n", body, *message)
	}

	htmlBody := fmt.Sprintf(
		`<p>Un couple souhaite travailler avec vous pour son mariage.</p><p><a href="%s">Accepter l'invitation</a></p>`,
		inviteURL,
	)

	email := mail.NewSingleEmail(p.from, subject, mail.NewEmail("", to), body, htmlBody)

	response, err := p.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}

// MockEmailProvider logs instead of sending. Used in development and tests.
type MockEmailProvider struct{}

func NewMockEmailProvider() *MockEmailProvider {
	return &MockEmailProvider{}
}

func (p *MockEmailProvider) SendInvitation(ctx context.Context, to, inviteURL string, message *string) error {
	log.Printf("MOCK EMAIL to %s: invitation link %s", to, inviteURL)
	return nil
}
