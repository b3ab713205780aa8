// Package ups provides the UPS rating integration.
package ups

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tournevent/rating/pkg/rating"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "ups"

// Config holds UPS carrier configuration.
type Config struct {
	Credentials rating.Credentials

	DefaultServiceCode   string
	DefaultPackagingCode string
	WeightUnit           rating.WeightUnit
	DimensionUnit        rating.DimensionUnit
	DefaultDimensions    rating.Dimensions

	// MaxWeight is the heaviest single package in kilograms; zero disables
	// splitting.
	MaxWeight float64

	SaturdayDelivery bool
	CODEnabled       bool
	CODFundsCode     string

	// BillMyAccount charges delivery on the customer's own UPS account, so
	// the quoted price is not passed on to them.
	BillMyAccount bool

	UseMock  bool
	Timeout  time.Duration
	Observer rating.PayloadObserver
}

// Client is the UPS rating client.
type Client struct {
	config    Config
	transport RateTransport
	converter rating.CurrencyConverter
	geo       rating.CountryResolver
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new UPS client.
func New(cfg Config, converter rating.CurrencyConverter, geo rating.CountryResolver, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var transport RateTransport

	if cfg.UseMock {
		transport = NewMockTransport()
	} else {
		transport = NewSOAPTransport(SOAPTransportConfig{
			Credentials: cfg.Credentials,
			Timeout:     cfg.Timeout,
			Observer:    cfg.Observer,
		})
	}

	return NewWithTransport(cfg, transport, converter, geo, logger, tracer)
}

// NewWithTransport creates a new UPS client with a custom transport.
func NewWithTransport(cfg Config, transport RateTransport, converter rating.CurrencyConverter, geo rating.CountryResolver, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		transport: transport,
		converter: converter,
		geo:       geo,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// RateShipment quotes the order with UPS: validate, build the wire request,
// invoke the rate operation and normalize the outcome. The transport is
// never called when validation fails, and nothing is retried automatically.
func (c *Client) RateShipment(ctx context.Context, order *rating.Order) (*rating.RateResult, error) {
	c.logger.Info("Rating UPS shipment",
		zap.String("order_id", order.ID),
		zap.String("destination_zip", order.ShipTo.Zip),
		zap.String("destination_country", order.ShipTo.CountryCode),
	)

	packages, err := rating.BuildOrderPackages(order, rating.PackageSpec{
		MaxWeight:     c.config.MaxWeight,
		WeightUnit:    c.config.WeightUnit,
		DimensionUnit: c.config.DimensionUnit,
		Dimensions:    c.config.DefaultDimensions,
		PackagingCode: c.config.DefaultPackagingCode,
	})
	if err != nil {
		return nil, fmt.Errorf("building packages: %w", err)
	}
	for i := range packages {
		packages[i].ReferenceName = order.ID
	}

	var cod *rating.CODInfo
	if c.config.CODEnabled {
		currency := order.Currency
		if c.geo != nil {
			if cur, ok := c.geo.CountryCurrency(order.ShipTo.CountryCode); ok {
				currency = cur
			}
		}
		cod = &rating.CODInfo{
			CurrencyCode:  currency,
			MonetaryValue: order.AmountTotal,
			FundsCode:     c.config.CODFundsCode,
		}
	}

	if msg := rating.ValidateShipment(&order.Shipper, &order.ShipFrom, &order.ShipTo, order, nil); msg != "" {
		return rating.Failure(rating.FaultValidation, msg), nil
	}

	serviceCode := order.ServiceCode
	if serviceCode == "" {
		serviceCode = c.config.DefaultServiceCode
	}

	_, totalQty := rating.ShippableTotals(order)
	req := buildRateRequest(&rating.ShipmentRequest{
		Packages:         packages,
		Shipper:          order.Shipper,
		ShipFrom:         order.ShipFrom,
		ShipTo:           order.ShipTo,
		ServiceCode:      serviceCode,
		PackagingCode:    c.config.DefaultPackagingCode,
		SaturdayDelivery: c.config.SaturdayDelivery,
		COD:              cod,
		TotalQuantity:    int(totalQty),
	}, c.config.Credentials.ShipperNumber)

	resp, err := c.transport.ProcessRate(ctx, req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.logger.Warn("UPS rejected rate request",
				zap.String("order_id", order.ID),
				zap.String("code", apiErr.Code),
			)
			return failure(rating.FaultBusiness, ErrorMessage(apiErr.Code, apiErr.Description)), nil
		}
		c.logger.Error("UPS transport error", zap.String("order_id", order.ID), zap.Error(err))
		return failure(rating.FaultTransport, ErrorMessage("0", fmt.Sprintf("UPS Server Not Found:\n%s", err))), nil
	}

	return c.mapResponse(ctx, order, resp)
}

// failure wraps a carrier-reported message the way the order layer expects.
func failure(kind rating.FaultKind, message string) *rating.RateResult {
	return rating.Failure(kind, "Error:\n"+message)
}

func (c *Client) mapResponse(ctx context.Context, order *rating.Order, resp *RateResponse) (*rating.RateResult, error) {
	if resp.Response.ResponseStatus.Code != "1" {
		return failure(rating.FaultBusiness,
			ErrorMessage(resp.Response.ResponseStatus.Code, resp.Response.ResponseStatus.Description)), nil
	}
	if len(resp.RatedShipments) == 0 {
		return failure(rating.FaultTransport, ErrorMessage("0", "UPS returned an empty rate response")), nil
	}

	rated := resp.RatedShipments[0]
	currency := rated.TotalCharges.CurrencyCode

	// Some shipper accounts qualify for negotiated rates.
	raw := rated.TotalCharges.MonetaryValue
	if rated.NegotiatedRateCharges != nil && rated.NegotiatedRateCharges.TotalCharge.MonetaryValue != "" {
		raw = rated.NegotiatedRateCharges.TotalCharge.MonetaryValue
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return failure(rating.FaultTransport, ErrorMessage("0", fmt.Sprintf("UPS returned a malformed amount %q", raw))), nil
	}

	var warning string
	if len(resp.Response.Alerts) > 0 {
		warning = resp.Response.Alerts[0].Description
	}

	var arrival *time.Time
	if rated.GuaranteedDelivery != nil && rated.GuaranteedDelivery.BusinessDaysInTransit != "" {
		if days, convErr := strconv.Atoi(rated.GuaranteedDelivery.BusinessDaysInTransit); convErr == nil {
			d := addBusinessDays(orderDate(order), days)
			arrival = &d
		}
	}

	if order.Currency != currency {
		converted, convErr := c.converter.Convert(ctx, price, currency, order.Currency, orderDate(order))
		if convErr != nil {
			return nil, fmt.Errorf("converting quote from %s to %s: %w", currency, order.Currency, convErr)
		}
		price = converted
	}

	if c.config.BillMyAccount && order.CarrierAccount != "" {
		// Delivery is charged on the customer's own account.
		price = decimal.Zero
	}

	return &rating.RateResult{
		Success:        true,
		Price:          price,
		CurrencyCode:   order.Currency,
		ArrivalDate:    arrival,
		WarningMessage: warning,
	}, nil
}

func orderDate(order *rating.Order) time.Time {
	if order.Date.IsZero() {
		return time.Now()
	}
	return order.Date
}

func addBusinessDays(from time.Time, days int) time.Time {
	d := from
	for days > 0 {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days--
		}
	}
	return d
}

// ============================================================================
// Request Builders
// ============================================================================

func buildRateRequest(shipment *rating.ShipmentRequest, shipperNumber string) *RateRequest {
	wire := Shipment{
		Shipper:  buildShipParty(shipment.Shipper, shipperNumber),
		ShipFrom: buildShipParty(shipment.ShipFrom, ""),
		ShipTo:   buildShipParty(shipment.ShipTo, ""),
		Service: CodeDescription{
			Code:        shipment.ServiceCode,
			Description: "Service Code",
		},
		Packages: buildPackages(shipment.Packages, shipment.PackagingCode,
			shipment.ShipFrom, shipment.ShipTo, shipment.COD),
		ShipmentRatingOptions: &ShipmentRatingOptions{NegotiatedRatesIndicator: "1"},
	}

	if !shipment.ShipTo.IsCompany {
		wire.ShipTo.Address.ResidentialAddressInd = &Indicator{}
	}
	if shipment.ServiceCode == serviceWorldwideExpressFreight {
		wire.NumOfPieces = shipment.TotalQuantity
	}
	if shipment.SaturdayDelivery {
		wire.ShipmentServiceOpts = &ShipmentServiceOpts{SaturdayDeliveryInd: &Indicator{}}
	}

	return &RateRequest{
		Request: RequestOptions{RequestOption: "Rate"},
		CustomerClassification: CodeDescription{
			Code:        "00",
			Description: "Get rates for the shipper account",
		},
		Shipment: wire,
	}
}

func buildShipParty(addr rating.Address, shipperNumber string) ShipParty {
	party := ShipParty{
		Name:          addr.Name,
		ShipperNumber: shipperNumber,
		Address: WireAddress{
			AddressLines: []string{addr.Street, addr.Street2},
			City:         addr.City,
			PostalCode:   addr.Zip,
			CountryCode:  addr.CountryCode,
		},
	}
	if rating.StateRequired(addr.CountryCode) {
		party.Address.StateProvinceCode = addr.StateCode
	}
	return party
}

func buildPackages(packages []rating.Package, defaultPackaging string, shipFrom, shipTo rating.Address, cod *rating.CODInfo) []WirePackage {
	wire := make([]WirePackage, 0, len(packages))
	for _, p := range packages {
		code := p.PackagingCode
		if code == "" {
			code = defaultPackaging
		}
		wp := WirePackage{
			PackagingType: CodeDescription{Code: code},
			PackageWeight: PackageWeight{
				UnitOfMeasurement: CodeDescription{Code: string(p.WeightUnit)},
				Weight:            formatMeasure(p.Weight),
			},
		}

		if !p.Dimensions.Zero() {
			wp.Dimensions = &WireDimensions{
				UnitOfMeasurement: CodeDescription{Code: string(p.DimensionUnit)},
				Length:            formatMeasure(p.Dimensions.Length),
				Width:             formatMeasure(p.Dimensions.Width),
				Height:            formatMeasure(p.Dimensions.Height),
			}
		}

		if cod != nil {
			wp.ServiceOptions = &PackageSvcOpts{
				COD: &COD{
					CODFundsCode: cod.FundsCode,
					CODAmount: CODAmount{
						CurrencyCode:  cod.CurrencyCode,
						MonetaryValue: cod.MonetaryValue.StringFixed(2),
					},
				},
			}
		}

		// Package reference text is only allowed for shipments within the
		// USA and within Puerto Rico. This is a UPS limitation.
		if p.ReferenceName != "" && shipFrom.CountryCode == "US" && shipTo.CountryCode == "US" {
			wp.ReferenceNumber = &ReferenceNumber{
				Code:             "PM",
				Value:            p.ReferenceName,
				BarCodeIndicator: p.ReferenceName,
			}
		}

		wire = append(wire, wp)
	}
	return wire
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ rating.Carrier = (*Client)(nil)
