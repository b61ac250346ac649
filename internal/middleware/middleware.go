// Package middleware holds the Echo middleware of the job portal API.
//
// It covers HTTP Basic authentication against stored users, request IDs,
// request-scoped loggers, New Relic tracing, per-client rate limiting,
// CORS, panic recovery and the global error handler.
package middleware
