package rating_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/rating/pkg/rating"
)

func TestRateError_Error(t *testing.T) {
	err := rating.NewRateError("ups", "111210", "The requested service is unavailable between the selected locations.")
	assert.Equal(t, "ups error (111210): The requested service is unavailable between the selected locations.", err.Error())
}

func TestRateError_ErrorWithCause(t *testing.T) {
	cause := errors.New("network timeout")
	err := rating.NewRateError("ups", "0", "UPS Server Not Found").WithCause(cause)
	assert.Contains(t, err.Error(), "UPS Server Not Found")
	assert.Contains(t, err.Error(), "network timeout")
}

func TestRateError_Unwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := rating.NewRateError("ups", "0", "UPS Server Not Found").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestRateError_Is(t *testing.T) {
	err1 := rating.NewRateError("ups", "110208", "Please select a different shipment date.")
	err2 := rating.NewRateError("demo", "110208", "Different message")

	// Same code should match
	assert.True(t, errors.Is(err1, err2))
}

func TestRateError_IsNot(t *testing.T) {
	err1 := rating.NewRateError("ups", "110208", "Please select a different shipment date.")
	err2 := rating.NewRateError("ups", "110308", "Different error")

	assert.False(t, errors.Is(err1, err2))
}

func TestRateError_WithKind(t *testing.T) {
	err := rating.NewRateError("ups", "250003", "Invalid Access License number.").WithKind(rating.FaultBusiness)
	assert.Equal(t, rating.FaultBusiness, err.Kind)
}

func TestIsTransportFault(t *testing.T) {
	err := rating.NewRateError("ups", "0", "UPS Server Not Found").WithKind(rating.FaultTransport)
	assert.True(t, rating.IsTransportFault(err))
}

func TestIsTransportFault_BusinessFault(t *testing.T) {
	err := rating.NewRateError("ups", "111210", "Service unavailable").WithKind(rating.FaultBusiness)
	assert.False(t, rating.IsTransportFault(err))
}

func TestIsTransportFault_PlainError(t *testing.T) {
	assert.False(t, rating.IsTransportFault(errors.New("boom")))
}

func TestIsTransportFault_Wrapped(t *testing.T) {
	inner := rating.NewRateError("ups", "0", "UPS Server Not Found").WithKind(rating.FaultTransport)
	wrapped := errors.Join(errors.New("rate call failed"), inner)
	assert.True(t, rating.IsTransportFault(wrapped))
}
