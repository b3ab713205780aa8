package ups

import (
	"context"
	"sync/atomic"
	"time"
)

// MockTransport is a mock implementation of RateTransport for testing.
type MockTransport struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnProcessRate func(ctx context.Context, req *RateRequest) (*RateResponse, error)

	calls atomic.Int64
}

// NewMockTransport creates a new mock transport with default behavior.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Calls returns how many times ProcessRate was invoked.
func (m *MockTransport) Calls() int {
	return int(m.calls.Load())
}

// ProcessRate returns a mock rate response.
func (m *MockTransport) ProcessRate(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	m.calls.Add(1)

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Description: "Simulated API error"}
	}

	if m.OnProcessRate != nil {
		return m.OnProcessRate(ctx, req)
	}

	return &RateResponse{
		Response: ResponseStatus{
			ResponseStatus: CodeDescription{Code: "1", Description: "Success"},
		},
		RatedShipments: []RatedShipment{
			{
				Service:      req.Shipment.Service,
				TotalCharges: Charges{CurrencyCode: "USD", MonetaryValue: "31.05"},
				GuaranteedDelivery: &GuaranteedInfo{
					BusinessDaysInTransit: "3",
				},
			},
		},
	}, nil
}

var _ RateTransport = (*MockTransport)(nil)
