package email

// PreviewData holds sample values for rendering every template locally.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Alice",
		"Email":         "alice@example.com",
	},
	TemplateApplicationSubmitted: {
		"UserFirstName": "Alice",
		"JobTitle":      "Backend Engineer",
		"CompanyName":   "Acme",
	},
}
