// Package quote exposes the checkout-facing quotation surface: look up an
// order, ask a carrier for a rate, and shape the outcome for the storefront.
package quote

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/tournevent/rating/internal/orders"
	"github.com/tournevent/rating/internal/telemetry"
	"github.com/tournevent/rating/pkg/rating"
)

// Result is the JSON shape returned to the storefront for both quoting and
// carrier selection. Mirrors what the checkout page consumes.
type Result struct {
	Status         bool   `json:"status"`
	Carrier        string `json:"carrier"`
	Price          string `json:"price,omitempty"`
	IsFreeDelivery bool   `json:"is_free_delivery"`
	ArrivalDate    string `json:"arrival_date,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	WarningMessage string `json:"warning_message,omitempty"`
}

// Service wires the carrier registry to the order source.
type Service struct {
	registry *rating.Registry
	orders   orders.Source
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// NewService creates a quote service.
func NewService(registry *rating.Registry, src orders.Source, logger *otelzap.Logger, metrics *telemetry.Metrics) *Service {
	return &Service{
		registry: registry,
		orders:   src,
		logger:   logger,
		metrics:  metrics,
	}
}

// Quote rates the order with the named carrier and shapes the result for
// the storefront. Carrier rejections come back as a failed Result, not an
// error; errors are reserved for unknown orders, unknown carriers, and
// broken wiring.
func (s *Service) Quote(ctx context.Context, orderID, carrier string) (*Result, error) {
	started := time.Now()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	c, err := s.registry.Get(carrier)
	if err != nil {
		return nil, err
	}

	rate, err := c.RateShipment(ctx, order)
	if err != nil {
		s.metrics.RecordRequest("quote", carrier, "error", time.Since(started).Seconds())
		return nil, err
	}

	status := "success"
	if !rate.Success {
		status = "failure"
		s.metrics.RecordError(carrier, string(rate.Fault))
	}
	s.metrics.RecordRequest("quote", carrier, status, time.Since(started).Seconds())

	s.logger.Ctx(ctx).Info("rated order",
		zap.String("order_id", orderID),
		zap.String("carrier", carrier),
		zap.Bool("success", rate.Success),
	)

	return shapeResult(carrier, order, rate), nil
}

// ApplyCarrier rates the order and, on success, records the carrier
// selection on the order. Re-applying the same carrier is harmless.
func (s *Service) ApplyCarrier(ctx context.Context, orderID, carrier string) (*Result, error) {
	result, err := s.Quote(ctx, orderID, carrier)
	if err != nil {
		return nil, err
	}
	if result.Status {
		if err := s.orders.SetCarrier(ctx, orderID, carrier); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func shapeResult(carrier string, order *rating.Order, rate *rating.RateResult) *Result {
	if !rate.Success {
		return &Result{
			Status:       false,
			Carrier:      carrier,
			ErrorMessage: rate.ErrorMessage,
		}
	}

	result := &Result{
		Status:         true,
		Carrier:        carrier,
		Price:          FormatAmount(rate.Price, order.Currency),
		IsFreeDelivery: rate.Price.IsZero(),
		WarningMessage: rate.WarningMessage,
	}
	if rate.ArrivalDate != nil {
		result.ArrivalDate = rate.ArrivalDate.Format("2006-01-02")
	}
	return result
}
