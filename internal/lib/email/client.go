// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and renders HTML
// bodies from templates embedded in the binary.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Client wraps the Resend client and a logger.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Integration.ResendAPIKey),
		from:   fmt.Sprintf("%s <%s>", "Job Portal", cfg.Integration.EmailFrom),
		logger: logger,
	}
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName and sends it to a single recipient.
//
// idempotencyKey lets Resend drop a resend of the same message when a
// job is retried after the provider already accepted it.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string, idempotencyKey string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	// An empty key is not sent.
	opts := &resend.SendEmailOptions{IdempotencyKey: idempotencyKey}

	sent, err := c.client.Emails.SendWithOptions(ctx, params, opts)
	if err != nil {
		return errors.Wrapf(err, "failed to send %s email", templateName)
	}

	c.logger.Debug().Str("template", string(templateName)).Str("email_id", sent.Id).Msg("email accepted by provider")
	return nil
}
