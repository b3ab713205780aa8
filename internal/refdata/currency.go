package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tournevent/rating/pkg/rating"
)

// StaticConverter converts between currencies using a fixed rate table
// (units of the currency per one USD). The table is immutable after
// construction; the asOf date is accepted for interface compatibility but
// static rates do not vary by date.
type StaticConverter struct {
	perUSD map[string]decimal.Decimal
}

// NewStaticConverter creates a converter over the built-in rate table.
func NewStaticConverter() *StaticConverter {
	return &StaticConverter{perUSD: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"CAD": decimal.RequireFromString("1.36"),
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"MXN": decimal.RequireFromString("17.10"),
		"AUD": decimal.RequireFromString("1.52"),
		"JPY": decimal.RequireFromString("149.50"),
		"CHF": decimal.RequireFromString("0.88"),
	}}
}

// Convert converts amount from one currency to another through the USD
// cross rate, rounded to 2 decimal places.
func (c *StaticConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := c.perUSD[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", rating.ErrConversionUnavailable, from)
	}
	toRate, ok := c.perUSD[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", rating.ErrConversionUnavailable, to)
	}
	return amount.Div(fromRate).Mul(toRate).Round(2), nil
}

var _ rating.CurrencyConverter = (*StaticConverter)(nil)
var _ rating.CountryResolver = (*GeoResolver)(nil)
