package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/errs"
)

type postJob struct {
	CompanyID      int64  `json:"company_id" validate:"required,min=1"`
	SkillsRequired string `json:"skills_required" validate:"max=5"`
}

func (p *postJob) Validate() error {
	return validator.New().Struct(p)
}

func bind(t *testing.T, body string, payload Validatable) *errs.HTTPError {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	err := BindAndValidate(c, payload)
	if err == nil {
		return nil
	}
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	if err := bind(t, `{"company_id":3,"skills_required":"Go"}`, &postJob{}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	err := bind(t, `{"skills_required":"Go, SQL"}`, &postJob{})
	if err == nil || err.Status != http.StatusBadRequest || len(err.Errors) != 2 {
		t.Fatalf("unexpected result %+v", err)
	}
	if err.Errors[0].Field != "company_id" || err.Errors[0].Error != "is required" {
		t.Fatalf("first field error %+v", err.Errors[0])
	}
	if err.Errors[1].Field != "skills_required" || err.Errors[1].Error != "must not exceed 5 characters" {
		t.Fatalf("second field error %+v", err.Errors[1])
	}

	if err := bind(t, `{"company_id":"three"}`, &postJob{}); err == nil || err.Status != http.StatusBadRequest {
		t.Fatalf("malformed body should be a 400, got %+v", err)
	}
}

func TestCustomValidationErrors(t *testing.T) {
	err := ValidationError(CustomValidationErrors{{Field: "from", Message: "from and to must be given together"}})
	if len(err.Errors) != 1 || err.Errors[0].Field != "from" {
		t.Fatalf("unexpected %+v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"Email":          "email",
		"CompanyID":      "company_id",
		"ID":             "id",
		"SkillsRequired": "skills_required",
	} {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
