package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/jobportal/internal/errs"
)

// ConvertPgError converts a raw Postgres error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// singular turns a plural table name into its entity name.
// "companies" -> "company", "job_postings" -> "job_posting".
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(name, "s") && len(name) > 1:
		return name[:len(name)-1]
	default:
		return name
	}
}

// generateErrorCode creates machine-readable codes like USER_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "record"
	}

	domain := strings.ToUpper(singular(strings.ToLower(tableName)))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces a client-facing message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		// On delete TableName is the referencing table; the message names
		// the one being deleted from.
		if m := restrictedTableRe.FindStringSubmatch(sqlErr.Message); len(m) > 1 {
			return fmt.Sprintf("The %s is still referenced by other records", humanizeText(singular(m[1])))
		}
		if column := extractColumnForForeignKey(sqlErr.TableName, sqlErr.ConstraintName); column != "" {
			entityName = getEntityName(sqlErr.TableName, column)
		}
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a "<entity>_id" column, then the table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		return humanizeText(singular(strings.ToLower(tableName)))
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "job_id" -> "Job Id".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var restrictedTableRe = regexp.MustCompile(`^update or delete on table "([^"]+)"`)

var uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a constraint name.
//
// Supported conventions:
//
//	unique_<table>_<column>      unique_users_email -> "email"
//	<table>_<column>_(key|ukey)  users_email_key    -> "email"
func extractColumnForUniqueViolation(tableName, constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if tableName != "" && strings.HasPrefix(constraintName, tableName+"_") {
		rest := strings.TrimPrefix(constraintName, tableName+"_")
		rest = strings.TrimSuffix(strings.TrimSuffix(rest, "_ukey"), "_key")
		if rest != "" && !strings.Contains(rest, "_id_") {
			return rest
		}
		return ""
	}

	if matches := uniqueConstraintRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractColumnForForeignKey reads the column out of Postgres' default
// foreign key name: job_postings_company_id_fkey -> "company_id".
func extractColumnForForeignKey(tableName, constraintName string) string {
	if tableName == "" || !strings.HasPrefix(constraintName, tableName+"_") {
		return ""
	}
	rest := strings.TrimPrefix(constraintName, tableName+"_")
	if !strings.HasSuffix(rest, "_fkey") {
		return ""
	}
	return strings.TrimSuffix(rest, "_fkey")
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged
//   - connectivity and timeout kinds become 503
//   - Postgres constraint errors become 400 with a friendly message
//   - pgx.ErrNoRows becomes 404
//   - everything else becomes 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if IsUnavailable(err) {
		return errs.NewServiceUnavailableError("The database is temporarily unavailable, please try again")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.TableName, sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewConflictError(userMessage, true, &errorCode)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
