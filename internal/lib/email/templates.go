package email

// Template names an embedded email template.
type Template string

const (
	TemplateWelcome              Template = "welcome"
	TemplateApplicationSubmitted Template = "application_submitted"
)

func (t Template) file() string {
	return string(t) + ".html"
}
