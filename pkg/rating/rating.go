// Package rating provides an abstraction layer for carrier rate quotation.
package rating

import (
	"context"
)

// Carrier defines the interface that all rating carriers must implement.
// Rating is a side-effect-free quote: RateShipment never commits a shipment
// and is safe to call again with the same order.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "ups").
	Name() string

	// RateShipment returns a normalized rate quote for the order.
	// Validation, business and transport failures are reported through
	// RateResult; the error return is reserved for misconfiguration and
	// programmer errors.
	RateShipment(ctx context.Context, order *Order) (*RateResult, error)
}
