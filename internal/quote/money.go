package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// currencySymbols maps the currencies we quote in to their display symbol.
var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"MXN": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "CHF ",
}

// FormatAmount renders an amount for checkout display, e.g. "$42.50".
// Currencies without a known symbol fall back to "42.50 XXX".
func FormatAmount(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
	}
	return symbol + amount.StringFixed(2)
}
