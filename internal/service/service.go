// Package service contains the business logic.
//
// It sits between the handler (or console) and repository layers.
// It receives input from the caller, performs business operations, and
// calls repository methods through the interfaces in package model, so
// every service can run over Postgres or the in-memory store.
//
// Storage failures are passed through unchanged as *sqlerr.OpError.
// Domain failures are reported with the sentinel errors below.
package service

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrJobNotFound         = errors.New("job posting not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrAlreadyApplied      = errors.New("already applied for this job")
	ErrInterviewExists     = errors.New("interview already scheduled for this application")
	ErrInvalidStatus       = errors.New("unknown status")
)

// validate checks the struct tags on service inputs.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// max counts runes; bcrypt reads at most 72 bytes.
	if err := v.RegisterValidation("bytesmax", bytesMax); err != nil {
		panic(err)
	}
	return v
}

// bytesMax reports whether a string field is at most param bytes long.
func bytesMax(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}
