// Package errs defines the error shapes returned to API clients.
//
// HTTPError carries a machine-readable code, a human message and the
// HTTP status; FieldError lists per-field validation failures.
package errs
