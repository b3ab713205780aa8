// Package refdata provides static reference-data implementations of the
// rating capabilities: country/state resolution and currency conversion.
// The production system backs these with its own data store; the bridge only
// needs a read-only snapshot.
package refdata

import (
	"strings"

	"github.com/samber/lo"
)

// Country is a single entry of the country table.
type Country struct {
	Code     string // ISO 3166-1 alpha-2
	Name     string
	Currency string
}

// State is a state or province of a country.
type State struct {
	Code string
	Name string
}

// GeoResolver resolves countries and states from ISO codes or display
// names. It is immutable after construction.
type GeoResolver struct {
	countries []Country
	states    map[string][]State
}

// NewGeoResolver creates a resolver over the built-in tables.
func NewGeoResolver() *GeoResolver {
	return &GeoResolver{
		countries: countries,
		states:    states,
	}
}

// ResolveCountry returns the ISO code for a country code or display name.
func (g *GeoResolver) ResolveCountry(codeOrName string) (string, bool) {
	c, ok := lo.Find(g.countries, func(c Country) bool {
		return strings.EqualFold(c.Code, codeOrName) || strings.EqualFold(c.Name, codeOrName)
	})
	if !ok {
		return "", false
	}
	return c.Code, true
}

// ResolveState returns the state code for a state code or display name
// within a country.
func (g *GeoResolver) ResolveState(codeOrName, countryCode string) (string, bool) {
	s, ok := lo.Find(g.states[strings.ToUpper(countryCode)], func(s State) bool {
		return strings.EqualFold(s.Code, codeOrName) || strings.EqualFold(s.Name, codeOrName)
	})
	if !ok {
		return "", false
	}
	return s.Code, true
}

// CountryCurrency returns the currency in use in a country.
func (g *GeoResolver) CountryCurrency(countryCode string) (string, bool) {
	c, ok := lo.Find(g.countries, func(c Country) bool {
		return strings.EqualFold(c.Code, countryCode)
	})
	if !ok {
		return "", false
	}
	return c.Currency, true
}

var countries = []Country{
	{"US", "United States", "USD"},
	{"CA", "Canada", "CAD"},
	{"IE", "Ireland", "EUR"},
	{"GB", "United Kingdom", "GBP"},
	{"FR", "France", "EUR"},
	{"DE", "Germany", "EUR"},
	{"BE", "Belgium", "EUR"},
	{"NL", "Netherlands", "EUR"},
	{"ES", "Spain", "EUR"},
	{"IT", "Italy", "EUR"},
	{"MX", "Mexico", "MXN"},
	{"AU", "Australia", "AUD"},
	{"JP", "Japan", "JPY"},
	{"CH", "Switzerland", "CHF"},
}

var states = map[string][]State{
	"US": {
		{"CA", "California"},
		{"NY", "New York"},
		{"TX", "Texas"},
		{"FL", "Florida"},
		{"IL", "Illinois"},
		{"PA", "Pennsylvania"},
		{"WA", "Washington"},
		{"MI", "Michigan"},
	},
	"CA": {
		{"ON", "Ontario"},
		{"QC", "Quebec"},
		{"BC", "British Columbia"},
		{"AB", "Alberta"},
		{"MB", "Manitoba"},
		{"NS", "Nova Scotia"},
	},
	"IE": {
		{"D", "Dublin"},
		{"CO", "Cork"},
		{"G", "Galway"},
		{"LM", "Limerick"},
	},
}
