package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendGridMailer struct {
	key  string
	from *sgmail.Email
}

func NewSendGridMailer(apiKey, senderName, senderEmail string) *SendGridMailer {
	return &SendGridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(senderName, senderEmail),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, htmlContent, textContent string) error {
	if m.key == "" {
		return fmt.Errorf("sendgrid API key is not configured")
	}

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(
		sgmail.NewContent("text/plain", textContent),
		sgmail.NewContent("text/html", htmlContent),
	)

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid API error: status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
