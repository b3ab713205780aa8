package ups

import (
	"context"
	"encoding/xml"
)

// RateTransport executes the UPS Rate operation.
// This abstraction allows for mock implementations during testing and the
// real SOAP implementation in production.
type RateTransport interface {
	// ProcessRate submits a rating request and returns the parsed response.
	// Structured rejections from the service come back as *APIError;
	// network and decoding failures come back as plain errors.
	ProcessRate(ctx context.Context, req *RateRequest) (*RateResponse, error)
}

// ============================================================================
// Wire Request Types (match the UPS RateWS schema)
// ============================================================================

// RateRequest is the body of a ProcessRate call.
type RateRequest struct {
	XMLName                xml.Name        `xml:"RateRequest"`
	Request                RequestOptions  `xml:"Request"`
	CustomerClassification CodeDescription `xml:"CustomerClassification"`
	Shipment               Shipment        `xml:"Shipment"`
}

// RequestOptions selects the rating mode.
type RequestOptions struct {
	RequestOption string `xml:"RequestOption"`
}

// CodeDescription is the generic code/description pair used throughout the
// UPS schema.
type CodeDescription struct {
	Code        string `xml:"Code"`
	Description string `xml:"Description,omitempty"`
}

// Shipment describes one shipment with its parties and packages.
type Shipment struct {
	Shipper               ShipParty              `xml:"Shipper"`
	ShipFrom              ShipParty              `xml:"ShipFrom"`
	ShipTo                ShipParty              `xml:"ShipTo"`
	Service               CodeDescription        `xml:"Service"`
	NumOfPieces           int                    `xml:"NumOfPieces,omitempty"`
	Packages              []WirePackage          `xml:"Package"`
	ShipmentServiceOpts   *ShipmentServiceOpts   `xml:"ShipmentServiceOptions,omitempty"`
	ShipmentRatingOptions *ShipmentRatingOptions `xml:"ShipmentRatingOptions,omitempty"`
}

// ShipParty is a shipper, ship-from or ship-to block.
type ShipParty struct {
	Name          string      `xml:"Name"`
	ShipperNumber string      `xml:"ShipperNumber,omitempty"`
	Address       WireAddress `xml:"Address"`
}

// Indicator marshals as an empty element when present.
type Indicator struct{}

// WireAddress is an address block in carrier notation.
type WireAddress struct {
	AddressLines          []string   `xml:"AddressLine"`
	City                  string     `xml:"City"`
	StateProvinceCode     string     `xml:"StateProvinceCode,omitempty"`
	PostalCode            string     `xml:"PostalCode"`
	CountryCode           string     `xml:"CountryCode"`
	ResidentialAddressInd *Indicator `xml:"ResidentialAddressIndicator,omitempty"`
}

// WirePackage is a single package record.
type WirePackage struct {
	PackagingType   CodeDescription  `xml:"PackagingType"`
	Dimensions      *WireDimensions  `xml:"Dimensions,omitempty"`
	PackageWeight   PackageWeight    `xml:"PackageWeight"`
	ServiceOptions  *PackageSvcOpts  `xml:"PackageServiceOptions,omitempty"`
	ReferenceNumber *ReferenceNumber `xml:"ReferenceNumber,omitempty"`
}

// WireDimensions is a package dimensions block with its unit.
type WireDimensions struct {
	UnitOfMeasurement CodeDescription `xml:"UnitOfMeasurement"`
	Length            string          `xml:"Length"`
	Width             string          `xml:"Width"`
	Height            string          `xml:"Height"`
}

// PackageWeight is a package weight block with its unit.
type PackageWeight struct {
	UnitOfMeasurement CodeDescription `xml:"UnitOfMeasurement"`
	Weight            string          `xml:"Weight"`
}

// PackageSvcOpts carries package-level value-added services.
type PackageSvcOpts struct {
	COD *COD `xml:"COD,omitempty"`
}

// COD is a collect-on-delivery block.
type COD struct {
	CODFundsCode string    `xml:"CODFundsCode"`
	CODAmount    CODAmount `xml:"CODAmount"`
}

// CODAmount is the monetary value collected on delivery.
type CODAmount struct {
	CurrencyCode  string `xml:"CurrencyCode"`
	MonetaryValue string `xml:"MonetaryValue"`
}

// ReferenceNumber annotates a package with merchant reference text.
// Only honored for domestic US shipments.
type ReferenceNumber struct {
	Code             string `xml:"Code"`
	Value            string `xml:"Value"`
	BarCodeIndicator string `xml:"BarCodeIndicator,omitempty"`
}

// ShipmentServiceOpts carries shipment-level value-added services.
type ShipmentServiceOpts struct {
	SaturdayDeliveryInd *Indicator `xml:"SaturdayDeliveryIndicator,omitempty"`
}

// ShipmentRatingOptions opts the request into account-negotiated pricing.
type ShipmentRatingOptions struct {
	NegotiatedRatesIndicator string `xml:"NegotiatedRatesIndicator"`
}

// ============================================================================
// Wire Response Types
// ============================================================================

// RateResponse is the parsed body of a successful ProcessRate call.
type RateResponse struct {
	Response       ResponseStatus  `xml:"Response"`
	RatedShipments []RatedShipment `xml:"RatedShipment"`
}

// ResponseStatus carries the service-level status and informational alerts.
// A status code other than "1" means the request was rejected.
type ResponseStatus struct {
	ResponseStatus CodeDescription   `xml:"ResponseStatus"`
	Alerts         []CodeDescription `xml:"Alert"`
}

// RatedShipment is a single priced shipment in the response.
type RatedShipment struct {
	Service               CodeDescription   `xml:"Service"`
	TotalCharges          Charges           `xml:"TotalCharges"`
	NegotiatedRateCharges *NegotiatedCharge `xml:"NegotiatedRateCharges"`
	GuaranteedDelivery    *GuaranteedInfo   `xml:"GuaranteedDelivery"`
}

// Charges is a monetary total with its currency.
type Charges struct {
	CurrencyCode  string `xml:"CurrencyCode"`
	MonetaryValue string `xml:"MonetaryValue"`
}

// NegotiatedCharge carries account-negotiated pricing when the shipper
// account qualifies for it.
type NegotiatedCharge struct {
	TotalCharge Charges `xml:"TotalCharge"`
}

// GuaranteedInfo carries the delivery commitment when the service has one.
type GuaranteedInfo struct {
	BusinessDaysInTransit string `xml:"BusinessDaysInTransit"`
	DeliveryByTime        string `xml:"DeliveryByTime"`
}

// APIError represents a structured rejection from the UPS API: either a
// SOAP fault's primary error code or a non-success response status.
type APIError struct {
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Description
}
