package email

import "context"

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, firstName, idempotencyKey string) error {
	data := map[string]string{
		"UserFirstName": firstName,
		"Email":         to,
	}

	return c.SendEmail(ctx, to, "Welcome to the Job Portal!", TemplateWelcome, data, idempotencyKey)
}

// SendApplicationSubmittedEmail confirms an application. companyName may
// be empty when the company no longer exists.
func (c *Client) SendApplicationSubmittedEmail(ctx context.Context, to, firstName, jobTitle, companyName, idempotencyKey string) error {
	data := map[string]string{
		"UserFirstName": firstName,
		"JobTitle":      jobTitle,
		"CompanyName":   companyName,
	}

	return c.SendEmail(ctx, to, "We received your application for "+jobTitle, TemplateApplicationSubmitted, data, idempotencyKey)
}
