// Package validation binds API request payloads and turns validator
// failures into field-level errs.HTTPError responses.
package validation
