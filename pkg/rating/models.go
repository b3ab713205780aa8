package rating

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightUnit represents a weight measurement unit in carrier notation.
type WeightUnit string

const (
	WeightKGS WeightUnit = "KGS"
	WeightLBS WeightUnit = "LBS"
)

// DimensionUnit represents a dimension measurement unit in carrier notation.
type DimensionUnit string

const (
	DimensionCM DimensionUnit = "CM"
	DimensionIN DimensionUnit = "IN"
)

// Address represents a shipper, warehouse or recipient address. Addresses
// are owned by the order store and read-only here.
type Address struct {
	Name        string
	Street      string
	Street2     string
	City        string
	Zip         string
	CountryCode string // ISO 3166-1 alpha-2, e.g., "US", "CA"
	StateCode   string // e.g., "CA", "ON"; required for US, CA and IE
	Phone       string
	Mobile      string
	IsCompany   bool
}

// Contact carries the order partner's phone numbers, used as the fallback
// when the recipient address has none.
type Contact struct {
	Phone  string
	Mobile string
}

// OrderLine is a single line of an order. Delivery and section lines do not
// contribute to the shipment.
type OrderLine struct {
	ProductName string
	Qty         float64
	Weight      float64 // unit weight in kilograms
	IsDelivery  bool
	IsSection   bool
}

// Order is the aggregate the order layer hands to a carrier for rating.
type Order struct {
	ID          string
	Currency    string
	AmountTotal decimal.Decimal
	Date        time.Time // transaction date; zero means today

	Lines []OrderLine

	Shipper  Address // company address
	ShipFrom Address // warehouse address
	ShipTo   Address // recipient shipping address
	Contact  Contact

	// ServiceCode overrides the carrier's default service when set.
	ServiceCode string

	// CarrierAccount is the customer's own account with the carrier, used
	// with the bill-my-account option.
	CarrierAccount string

	// CarrierName is the carrier currently applied to the order.
	CarrierName string
}

// Dimensions are the outer dimensions of a package.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Zero reports whether all three dimensions are unset.
func (d Dimensions) Zero() bool {
	return d.Length == 0 && d.Width == 0 && d.Height == 0
}

// Package is a single parcel of a shipment, immutable once built.
type Package struct {
	Weight        float64 // already converted to WeightUnit
	WeightUnit    WeightUnit
	Dimensions    Dimensions
	DimensionUnit DimensionUnit
	PackagingCode string // overrides the shipment default when set
	ReferenceName string
}

// CODInfo describes a collect-on-delivery request.
type CODInfo struct {
	CurrencyCode  string
	MonetaryValue decimal.Decimal
	FundsCode     string
}

// ShipmentRequest aggregates everything a request builder needs. Built fresh
// per rating call; it has no persisted identity.
type ShipmentRequest struct {
	Packages         []Package
	Shipper          Address
	ShipFrom         Address
	ShipTo           Address
	ServiceCode      string
	PackagingCode    string
	SaturdayDelivery bool
	COD              *CODInfo
	TotalQuantity    int
}

// PickingPackage is a physical package recorded on a fulfillment picking.
type PickingPackage struct {
	Name           string
	ShippingWeight float64
}

// Picking is an optional validation context when rating happens from a
// fulfillment picking instead of a bare order.
type Picking struct {
	Order    *Order
	Packages []PickingPackage
}

// FaultKind classifies a rating failure. It is kept internal for telemetry
// and retry policy; callers only ever see the error message.
type FaultKind string

const (
	FaultNone       FaultKind = ""
	FaultValidation FaultKind = "validation"
	FaultBusiness   FaultKind = "business"
	FaultTransport  FaultKind = "transport"
)

// RateResult is the authoritative contract returned to the order layer.
// It never leaks raw transport errors.
type RateResult struct {
	Success        bool
	Price          decimal.Decimal
	CurrencyCode   string
	ArrivalDate    *time.Time
	ErrorMessage   string
	WarningMessage string
	Fault          FaultKind
}

// Failure builds a failed RateResult with the given fault kind.
func Failure(kind FaultKind, message string) *RateResult {
	return &RateResult{
		Success:      false,
		Price:        decimal.Zero,
		ErrorMessage: message,
		Fault:        kind,
	}
}

// Credentials identify a shipper account with a carrier. They are owned by
// configuration and never mutated by the rating core.
type Credentials struct {
	Username            string
	Password            string
	ShipperNumber       string
	AccessLicenseNumber string
	Production          bool
}
