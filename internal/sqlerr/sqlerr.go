// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes from the pgx driver, classifies failures into
// a small set of kinds (connectivity, timeout, constraint, query) that
// callers can branch on, and converts them into user-friendly messages
// for the HTTP layer (e.g. a "foreign key violation" becomes a
// "Bad Request" error).
package sqlerr

import "fmt"

// Code is the application's name for a Postgres SQLSTATE.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	ExclusionViolation        Code = "exclusion_violation"
	StringDataRightTruncation Code = "string_data_right_truncation"
	InvalidTextRepresentation Code = "invalid_text_representation"
	ConnectionException       Code = "connection_exception"
	QueryCanceled             Code = "query_canceled"
	UndefinedTable            Code = "undefined_table"
)

// MapCode maps a raw SQLSTATE into a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22001":
		return StringDataRightTruncation
	case "22P02":
		return InvalidTextRepresentation
	case "57014":
		return QueryCanceled
	case "42P01":
		return UndefinedTable
	}

	// Class 08 is "connection exception" in every subcode.
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionException
	}

	return Other
}

// Severity mirrors the Postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a normalized Postgres error. It keeps the original driver
// error reachable through Unwrap.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (code %s, SQLSTATE %s)", e.Severity, e.Message, e.Code, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
