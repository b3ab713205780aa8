package rating

import (
	"errors"
	"fmt"
)

// RateError represents an error from a rating carrier.
type RateError struct {
	Carrier string
	Code    string
	Message string
	Kind    FaultKind
	Cause   error
}

// Error implements the error interface.
func (e *RateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Carrier, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RateError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for RateError.
func (e *RateError) Is(target error) bool {
	t, ok := target.(*RateError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewRateError creates a new RateError.
func NewRateError(carrier, code, message string) *RateError {
	return &RateError{
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// WithCause adds a cause to the error.
func (e *RateError) WithCause(err error) *RateError {
	e.Cause = err
	return e
}

// WithKind classifies the error.
func (e *RateError) WithKind(kind FaultKind) *RateError {
	e.Kind = kind
	return e
}

// Sentinel errors for common rating scenarios.
var (
	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrOrderNotFound indicates the order ID was not found in the order source.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUnknownUnit indicates an unrecognized measurement unit code. This
	// is a programmer error: units come from configuration, not user input.
	ErrUnknownUnit = errors.New("unknown measurement unit")

	// ErrMissingCredentials indicates carrier credentials are incomplete.
	ErrMissingCredentials = errors.New("missing carrier credentials")

	// ErrConversionUnavailable indicates the currency conversion capability
	// has no rate for the requested currency pair.
	ErrConversionUnavailable = errors.New("currency conversion unavailable")
)

// IsTransportFault reports whether the error is a transport-layer failure.
// Transport faults are not input-dependent and are safe to retry; the caller
// decides whether to do so.
func IsTransportFault(err error) bool {
	var rateErr *RateError
	if errors.As(err, &rateErr) {
		return rateErr.Kind == FaultTransport
	}
	return false
}
