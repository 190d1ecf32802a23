// Package errdefs defines the error taxonomy shared by the number theory,
// algorithm and benchmark packages.
package errdefs

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a violated argument precondition.
	ErrInvalidInput = errors.New("invalid input")
	// ErrVerificationFailure marks factors that do not reconstruct the input.
	ErrVerificationFailure = errors.New("verification failure")
	// ErrFactorizationTimeout marks an exhausted internal retry budget.
	ErrFactorizationTimeout = errors.New("factorization timeout")
	// ErrConfiguration marks a malformed algorithm configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrDeadlineExceeded marks a trial abandoned by the harness timeout.
	ErrDeadlineExceeded = errors.New("trial deadline exceeded")
	// ErrPanic marks an algorithm that panicked during a trial.
	ErrPanic = errors.New("algorithm panicked")
)

// Kind values recorded on failed trials.
const (
	KindInvalidInput         = "invalid_input"
	KindVerificationFailure  = "verification_failure"
	KindFactorizationTimeout = "factorization_timeout"
	KindConfiguration        = "configuration"
	KindDeadlineExceeded     = "deadline_exceeded"
	KindPanic                = "panic"
	KindError                = "error"
)

func wrap(sentinel error, format string, args []any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// InvalidInput returns an error wrapping ErrInvalidInput.
func InvalidInput(format string, args ...any) error {
	return wrap(ErrInvalidInput, format, args)
}

// VerificationFailure returns an error wrapping ErrVerificationFailure.
func VerificationFailure(format string, args ...any) error {
	return wrap(ErrVerificationFailure, format, args)
}

// FactorizationTimeout returns an error wrapping ErrFactorizationTimeout.
func FactorizationTimeout(format string, args ...any) error {
	return wrap(ErrFactorizationTimeout, format, args)
}

// Configuration returns an error wrapping ErrConfiguration.
func Configuration(format string, args ...any) error {
	return wrap(ErrConfiguration, format, args)
}

// Kind classifies err into one of the Kind* strings. A nil error yields "".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrVerificationFailure):
		return KindVerificationFailure
	case errors.Is(err, ErrFactorizationTimeout):
		return KindFactorizationTimeout
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrDeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return KindDeadlineExceeded
	case errors.Is(err, ErrPanic):
		return KindPanic
	default:
		return KindError
	}
}
