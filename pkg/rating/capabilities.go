package rating

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyConverter converts an amount between currencies at a given date.
// The surrounding system owns the rates; the rating core only consumes them.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error)
}

// CountryResolver resolves countries and states from either an ISO code or a
// display name, and reports the currency in use in a country. The same
// formats are accepted by the surrounding address-entry UI.
type CountryResolver interface {
	ResolveCountry(codeOrName string) (string, bool)
	ResolveState(codeOrName, countryCode string) (string, bool)
	CountryCurrency(countryCode string) (string, bool)
}

// Payload directions passed to a PayloadObserver.
const (
	PayloadEgress  = "egress"
	PayloadIngress = "ingress"
)

// PayloadObserver receives raw request and response payloads from a
// transport client for audit logging. Observers must not mutate the payload
// and have no effect on control flow.
type PayloadObserver interface {
	ObservePayload(direction, operation string, payload []byte)
}

// PayloadObserverFunc adapts a function to the PayloadObserver interface.
type PayloadObserverFunc func(direction, operation string, payload []byte)

// ObservePayload implements PayloadObserver.
func (f PayloadObserverFunc) ObservePayload(direction, operation string, payload []byte) {
	f(direction, operation, payload)
}
