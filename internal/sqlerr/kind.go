package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the coarse category of a storage failure.
type Kind string

const (
	KindNone         Kind = ""
	KindConnectivity Kind = "connectivity"
	KindTimeout      Kind = "timeout"
	KindConstraint   Kind = "constraint"
	KindQuery        Kind = "query"
)

// ErrConnection marks failures to obtain a usable connection.
var ErrConnection = errors.New("database connection unavailable")

// OpError is returned by every repository method that fails.
//
// Op names the failing operation ("users.save"), Kind its category and
// Err the underlying driver error.
type OpError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Wrap classifies err and wraps it as an *OpError for op.
// A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var opErr *OpError
	if errors.As(err, &opErr) {
		return &OpError{Op: op, Kind: opErr.Kind, Err: opErr.Err}
	}

	return &OpError{Op: op, Kind: Classify(err), Err: err}
}

// KindOf returns the kind recorded on err, classifying it when err was
// never wrapped.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}

	return Classify(err)
}

// Classify inspects a raw driver error.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, ErrConnection) {
		return KindConnectivity
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch code := MapCode(pgErr.Code); {
		case code == QueryCanceled:
			return KindTimeout
		case code == ConnectionException:
			return KindConnectivity
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "23":
			return KindConstraint
		default:
			return KindQuery
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return KindTimeout
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return KindConnectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindConnectivity
	}

	return KindQuery
}

// IsConstraint reports whether err is an integrity constraint violation.
func IsConstraint(err error) bool {
	return KindOf(err) == KindConstraint
}

// IsUnavailable reports whether the database could not be reached in time.
func IsUnavailable(err error) bool {
	k := KindOf(err)
	return k == KindConnectivity || k == KindTimeout
}
