// Package handler is the HTTP layer of the job portal API.
//
// Each endpoint is a typed function taking a bound, validated request and
// returning a result or an error; Handle and HandleNoContent adapt them to
// Echo. Errors are left to the global error handler in package
// middleware.
package handler
