package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/errs"
)

// Validatable is implemented by request payloads, normally by running
// validator over their struct tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a rule that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds path, query and body values into payload and
// validates it. Both failures come back as a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request"

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusUnsupportedMediaType {
				return errs.NewBadRequestError("Unsupported content type", false, nil, nil, nil)
			}
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return ValidationError(err)
	}

	return nil
}

// ValidationError converts validator.ValidationErrors or
// CustomValidationErrors into a 400 with one FieldError per field. Any
// other error is returned as a plain 400.
func ValidationError(err error) *errs.HTTPError {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs.NewBadRequestError(err.Error(), false, nil, nil, nil)
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: toSnakeCase(e.Field()),
			Error: fieldMessage(e),
		})
	}

	return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", e.Param())
		}
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "bytesmax":
		return fmt.Sprintf("must not exceed %s bytes", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "email":
		return "must be a valid email address"
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", e.Param())
	}

	if e.Param() != "" {
		return fmt.Sprintf("failed %s=%s", e.Tag(), e.Param())
	}
	return "failed " + e.Tag()
}

// toSnakeCase turns "SkillsRequired" into "skills_required" and "CompanyID"
// into "company_id", matching the JSON names.
func toSnakeCase(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
