package email

import (
	"strings"
	"testing"
)

func TestEveryTemplateRendersPreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		if err != nil {
			t.Fatalf("Render(%s): %v", name, err)
		}
		if !strings.Contains(html, data["UserFirstName"]) {
			t.Fatalf("Render(%s) did not include the first name", name)
		}
	}
}

func TestApplicationTemplateOmitsMissingCompany(t *testing.T) {
	html, err := Render(TemplateApplicationSubmitted, map[string]string{
		"UserFirstName": "Bob",
		"JobTitle":      "Data Analyst",
		"CompanyName":   "",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, " at .") || strings.Contains(html, "</strong> at") {
		t.Fatalf("expected no company clause, got %s", html)
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{
		"UserFirstName": "<script>x</script>",
		"Email":         "a@example.com",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("template output was not escaped")
	}
}

func TestUnknownTemplate(t *testing.T) {
	if _, err := Render(Template("missing"), nil); err == nil {
		t.Fatalf("expected an error for an unknown template")
	}
}
