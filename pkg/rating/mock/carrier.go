// Package mock provides a mock rating carrier for testing.
package mock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tournevent/rating/pkg/rating"
)

// Carrier is a mock rating carrier.
type Carrier struct {
	name string

	// Result, when set, is returned from every RateShipment call.
	Result *rating.RateResult

	// Err, when set, is returned instead of a result.
	Err error

	// OnRateShipment, when set, overrides the default behavior entirely.
	OnRateShipment func(ctx context.Context, order *rating.Order) (*rating.RateResult, error)
}

// New creates a new mock carrier.
func New(name string) *Carrier {
	return &Carrier{name: name}
}

// Name returns the carrier name.
func (c *Carrier) Name() string {
	return c.name
}

// RateShipment returns a canned quote in the order's currency.
func (c *Carrier) RateShipment(ctx context.Context, order *rating.Order) (*rating.RateResult, error) {
	if c.OnRateShipment != nil {
		return c.OnRateShipment(ctx, order)
	}
	if c.Err != nil {
		return nil, c.Err
	}
	if c.Result != nil {
		return c.Result, nil
	}

	return &rating.RateResult{
		Success:      true,
		Price:        decimal.RequireFromString("15.82"),
		CurrencyCode: order.Currency,
	}, nil
}

var _ rating.Carrier = (*Carrier)(nil)
