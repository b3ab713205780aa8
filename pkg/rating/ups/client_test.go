package ups_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/rating/pkg/rating"
	"github.com/tournevent/rating/pkg/rating/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// stubConverter converts at a fixed multiplier and counts invocations.
type stubConverter struct {
	factor decimal.Decimal
	calls  int
	err    error
}

func (s *stubConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	s.calls++
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return amount.Mul(s.factor).Round(2), nil
}

// stubGeo maps a couple of countries to their currencies.
type stubGeo struct{}

func (stubGeo) ResolveCountry(codeOrName string) (string, bool) { return codeOrName, true }

func (stubGeo) ResolveState(codeOrName, countryCode string) (string, bool) { return codeOrName, true }

func (stubGeo) CountryCurrency(countryCode string) (string, bool) {
	switch countryCode {
	case "US":
		return "USD", true
	case "CA":
		return "CAD", true
	}
	return "", false
}

func newTestClient(cfg ups.Config, transport ups.RateTransport, converter rating.CurrencyConverter) *ups.Client {
	logger := otelzap.New(zap.NewNop())
	if converter == nil {
		converter = &stubConverter{factor: decimal.NewFromInt(1)}
	}
	return ups.NewWithTransport(cfg, transport, converter, stubGeo{}, logger, nil)
}

func testAddress() rating.Address {
	return rating.Address{
		Name:        "Acme Corp",
		Street:      "123 Main St",
		City:        "San Francisco",
		Zip:         "94105",
		CountryCode: "US",
		StateCode:   "CA",
		Phone:       "4155550142",
		IsCompany:   true,
	}
}

func testOrder() *rating.Order {
	return &rating.Order{
		ID:          "SO042",
		Currency:    "USD",
		AmountTotal: decimal.RequireFromString("120.00"),
		Lines: []rating.OrderLine{
			{ProductName: "Desk", Qty: 1, Weight: 12.5},
		},
		Shipper:  testAddress(),
		ShipFrom: testAddress(),
		ShipTo:   testAddress(),
	}
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(ups.Config{}, ups.NewMockTransport(), nil)
	assert.Equal(t, "ups", client.Name())
}

func TestClient_RateShipment_Success(t *testing.T) {
	transport := ups.NewMockTransport()
	client := newTestClient(ups.Config{
		DefaultServiceCode:   "03",
		DefaultPackagingCode: "02",
		WeightUnit:           rating.WeightLBS,
		DimensionUnit:        rating.DimensionIN,
	}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, decimal.RequireFromString("31.05").Equal(result.Price))
	assert.Equal(t, "USD", result.CurrencyCode)
	assert.Empty(t, result.ErrorMessage)
	assert.Equal(t, 1, transport.Calls())
}

func TestClient_RateShipment_ValidationSkipsTransport(t *testing.T) {
	transport := ups.NewMockTransport()
	client := newTestClient(ups.Config{
		DefaultServiceCode: "03",
		WeightUnit:         rating.WeightLBS,
	}, transport, nil)

	order := testOrder()
	order.ShipTo.Zip = ""

	result, err := client.RateShipment(context.Background(), order)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "recipient address is missing or wrong")
	assert.Equal(t, rating.FaultValidation, result.Fault)
	assert.Equal(t, 0, transport.Calls())
}

func TestClient_RateShipment_KnownAPIError(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return nil, &ups.APIError{Code: "111210", Description: "raw carrier text"}
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Error:\nThe selected service is invalid to the recipient address, please choose another service.", result.ErrorMessage)
	assert.Equal(t, rating.FaultBusiness, result.Fault)
}

func TestClient_RateShipment_UnknownAPIError(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return nil, &ups.APIError{Code: "999999", Description: "Something new went wrong"}
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Error:\nSomething new went wrong", result.ErrorMessage)
}

func TestClient_RateShipment_TransportError(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return nil, errors.New("connection refused")
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "UPS Server Not Found")
	assert.Contains(t, result.ErrorMessage, "connection refused")
	assert.Equal(t, rating.FaultTransport, result.Fault)
}

func TestClient_RateShipment_RejectedStatus(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "0", Description: "Failure"},
			},
		}, nil
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, rating.FaultBusiness, result.Fault)
}

func TestClient_RateShipment_EmptyRatedShipments(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "1", Description: "Success"},
			},
		}, nil
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, rating.FaultTransport, result.Fault)
}

func TestClient_RateShipment_NegotiatedRatePreferred(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "1", Description: "Success"},
			},
			RatedShipments: []ups.RatedShipment{{
				TotalCharges: ups.Charges{CurrencyCode: "USD", MonetaryValue: "50.00"},
				NegotiatedRateCharges: &ups.NegotiatedCharge{
					TotalCharge: ups.Charges{CurrencyCode: "USD", MonetaryValue: "42.50"},
				},
			}},
		}, nil
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, decimal.RequireFromString("42.50").Equal(result.Price))
}

func TestClient_RateShipment_MalformedAmount(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "1", Description: "Success"},
			},
			RatedShipments: []ups.RatedShipment{{
				TotalCharges: ups.Charges{CurrencyCode: "USD", MonetaryValue: "not-a-number"},
			}},
		}, nil
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, rating.FaultTransport, result.Fault)
}

func TestClient_RateShipment_CurrencyConversion(t *testing.T) {
	converter := &stubConverter{factor: decimal.RequireFromString("1.36")}
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "1", Description: "Success"},
			},
			RatedShipments: []ups.RatedShipment{{
				TotalCharges: ups.Charges{CurrencyCode: "USD", MonetaryValue: "10.00"},
			}},
		}, nil
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, converter)

	order := testOrder()
	order.Currency = "CAD"

	result, err := client.RateShipment(context.Background(), order)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, decimal.RequireFromString("13.60").Equal(result.Price))
	assert.Equal(t, "CAD", result.CurrencyCode)
	assert.Equal(t, 1, converter.calls)
}

func TestClient_RateShipment_NoConversionSameCurrency(t *testing.T) {
	converter := &stubConverter{factor: decimal.NewFromInt(1)}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, ups.NewMockTransport(), converter)

	_, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, 0, converter.calls)
}

func TestClient_RateShipment_ConversionError(t *testing.T) {
	converter := &stubConverter{err: rating.ErrConversionUnavailable}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, ups.NewMockTransport(), converter)

	order := testOrder()
	order.Currency = "CAD"

	_, err := client.RateShipment(context.Background(), order)
	assert.ErrorIs(t, err, rating.ErrConversionUnavailable)
}

func TestClient_RateShipment_BillMyAccount(t *testing.T) {
	client := newTestClient(ups.Config{
		WeightUnit:    rating.WeightLBS,
		BillMyAccount: true,
	}, ups.NewMockTransport(), nil)

	order := testOrder()
	order.CarrierAccount = "A1B2C3"

	result, err := client.RateShipment(context.Background(), order)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, result.Price.IsZero())
}

func TestClient_RateShipment_BillMyAccountWithoutAccount(t *testing.T) {
	client := newTestClient(ups.Config{
		WeightUnit:    rating.WeightLBS,
		BillMyAccount: true,
	}, ups.NewMockTransport(), nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.False(t, result.Price.IsZero())
}

func TestClient_RateShipment_ArrivalDateSkipsWeekends(t *testing.T) {
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, ups.NewMockTransport(), nil)

	order := testOrder()
	// A Friday; three business days later is Wednesday.
	order.Date = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	result, err := client.RateShipment(context.Background(), order)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.ArrivalDate)
	assert.Equal(t, time.Date(2024, 6, 19, 0, 0, 0, 0, time.UTC), *result.ArrivalDate)
}

func TestClient_RateShipment_WarningFromAlert(t *testing.T) {
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "1", Description: "Success"},
				Alerts: []ups.CodeDescription{
					{Code: "110971", Description: "Your invoice may vary from the displayed reference rates"},
				},
			},
			RatedShipments: []ups.RatedShipment{{
				TotalCharges: ups.Charges{CurrencyCode: "USD", MonetaryValue: "31.05"},
			}},
		}, nil
	}
	client := newTestClient(ups.Config{WeightUnit: rating.WeightLBS}, transport, nil)

	result, err := client.RateShipment(context.Background(), testOrder())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "Your invoice may vary from the displayed reference rates", result.WarningMessage)
}

func capturedRequest(t *testing.T, cfg ups.Config, order *rating.Order) *ups.RateRequest {
	t.Helper()

	var captured *ups.RateRequest
	transport := ups.NewMockTransport()
	transport.OnProcessRate = func(ctx context.Context, req *ups.RateRequest) (*ups.RateResponse, error) {
		captured = req
		return &ups.RateResponse{
			Response: ups.ResponseStatus{
				ResponseStatus: ups.CodeDescription{Code: "1", Description: "Success"},
			},
			RatedShipments: []ups.RatedShipment{{
				TotalCharges: ups.Charges{CurrencyCode: "USD", MonetaryValue: "31.05"},
			}},
		}, nil
	}

	client := newTestClient(cfg, transport, nil)
	_, err := client.RateShipment(context.Background(), order)
	require.NoError(t, err)
	require.NotNil(t, captured)
	return captured
}

func TestClient_Request_DefaultsAndClassification(t *testing.T) {
	req := capturedRequest(t, ups.Config{
		DefaultServiceCode:   "03",
		DefaultPackagingCode: "02",
		WeightUnit:           rating.WeightLBS,
		DimensionUnit:        rating.DimensionIN,
	}, testOrder())

	assert.Equal(t, "Rate", req.Request.RequestOption)
	assert.Equal(t, "00", req.CustomerClassification.Code)
	assert.Equal(t, "03", req.Shipment.Service.Code)
	require.Len(t, req.Shipment.Packages, 1)
	assert.Equal(t, "02", req.Shipment.Packages[0].PackagingType.Code)
	assert.Equal(t, "1", req.Shipment.ShipmentRatingOptions.NegotiatedRatesIndicator)
}

func TestClient_Request_ServiceCodeOverride(t *testing.T) {
	order := testOrder()
	order.ServiceCode = "11"

	req := capturedRequest(t, ups.Config{
		DefaultServiceCode: "03",
		WeightUnit:         rating.WeightLBS,
	}, order)

	assert.Equal(t, "11", req.Shipment.Service.Code)
}

func TestClient_Request_StateOnlyWhenRequired(t *testing.T) {
	order := testOrder()
	order.ShipTo = rating.Address{
		Name:        "Jean Dupont",
		Street:      "12 Rue de Rivoli",
		City:        "Paris",
		Zip:         "75001",
		CountryCode: "FR",
		StateCode:   "IDF",
		Phone:       "+33 1 42 60 38 30",
		IsCompany:   true,
	}

	req := capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, order)

	assert.Equal(t, "CA", req.Shipment.Shipper.Address.StateProvinceCode)
	assert.Empty(t, req.Shipment.ShipTo.Address.StateProvinceCode)
}

func TestClient_Request_ResidentialIndicator(t *testing.T) {
	order := testOrder()
	order.ShipTo.IsCompany = false

	req := capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, order)
	assert.NotNil(t, req.Shipment.ShipTo.Address.ResidentialAddressInd)

	req = capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, testOrder())
	assert.Nil(t, req.Shipment.ShipTo.Address.ResidentialAddressInd)
}

func TestClient_Request_NumOfPiecesForFreight(t *testing.T) {
	order := testOrder()
	order.ServiceCode = "96"
	order.Lines = []rating.OrderLine{
		{ProductName: "Pallet", Qty: 4, Weight: 100},
	}

	req := capturedRequest(t, ups.Config{WeightUnit: rating.WeightKGS}, order)
	assert.Equal(t, 4, req.Shipment.NumOfPieces)
}

func TestClient_Request_NoNumOfPiecesForParcel(t *testing.T) {
	req := capturedRequest(t, ups.Config{
		DefaultServiceCode: "03",
		WeightUnit:         rating.WeightLBS,
	}, testOrder())
	assert.Zero(t, req.Shipment.NumOfPieces)
}

func TestClient_Request_SaturdayDelivery(t *testing.T) {
	req := capturedRequest(t, ups.Config{
		WeightUnit:       rating.WeightLBS,
		SaturdayDelivery: true,
	}, testOrder())
	require.NotNil(t, req.Shipment.ShipmentServiceOpts)
	assert.NotNil(t, req.Shipment.ShipmentServiceOpts.SaturdayDeliveryInd)
}

func TestClient_Request_CODUsesDestinationCurrency(t *testing.T) {
	order := testOrder()
	order.ShipTo.CountryCode = "CA"
	order.ShipTo.StateCode = "ON"

	req := capturedRequest(t, ups.Config{
		WeightUnit:   rating.WeightLBS,
		CODEnabled:   true,
		CODFundsCode: "0",
	}, order)

	require.Len(t, req.Shipment.Packages, 1)
	opts := req.Shipment.Packages[0].ServiceOptions
	require.NotNil(t, opts)
	require.NotNil(t, opts.COD)
	assert.Equal(t, "0", opts.COD.CODFundsCode)
	assert.Equal(t, "CAD", opts.COD.CODAmount.CurrencyCode)
	assert.Equal(t, "120.00", opts.COD.CODAmount.MonetaryValue)
}

func TestClient_Request_NoCODWhenDisabled(t *testing.T) {
	req := capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, testOrder())
	assert.Nil(t, req.Shipment.Packages[0].ServiceOptions)
}

func TestClient_Request_ReferenceOnlyDomesticUS(t *testing.T) {
	req := capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, testOrder())
	require.NotNil(t, req.Shipment.Packages[0].ReferenceNumber)
	assert.Equal(t, "PM", req.Shipment.Packages[0].ReferenceNumber.Code)
	assert.Equal(t, "SO042", req.Shipment.Packages[0].ReferenceNumber.Value)

	order := testOrder()
	order.ShipTo.CountryCode = "CA"
	order.ShipTo.StateCode = "ON"
	req = capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, order)
	assert.Nil(t, req.Shipment.Packages[0].ReferenceNumber)
}

func TestClient_Request_SplitsHeavyOrder(t *testing.T) {
	order := testOrder()
	order.Lines = []rating.OrderLine{
		{ProductName: "Bricks", Qty: 5, Weight: 25},
	}

	req := capturedRequest(t, ups.Config{
		WeightUnit: rating.WeightKGS,
		MaxWeight:  50,
	}, order)

	require.Len(t, req.Shipment.Packages, 3)
	assert.Equal(t, "50", req.Shipment.Packages[0].PackageWeight.Weight)
	assert.Equal(t, "25", req.Shipment.Packages[2].PackageWeight.Weight)
	assert.Equal(t, "KGS", req.Shipment.Packages[0].PackageWeight.UnitOfMeasurement.Code)
}

func TestClient_Request_DimensionsOnlyWhenConfigured(t *testing.T) {
	req := capturedRequest(t, ups.Config{WeightUnit: rating.WeightLBS}, testOrder())
	assert.Nil(t, req.Shipment.Packages[0].Dimensions)

	req = capturedRequest(t, ups.Config{
		WeightUnit:        rating.WeightLBS,
		DimensionUnit:     rating.DimensionIN,
		DefaultDimensions: rating.Dimensions{Length: 12, Width: 10, Height: 8},
	}, testOrder())
	require.NotNil(t, req.Shipment.Packages[0].Dimensions)
	assert.Equal(t, "12", req.Shipment.Packages[0].Dimensions.Length)
	assert.Equal(t, "IN", req.Shipment.Packages[0].Dimensions.UnitOfMeasurement.Code)
}
