package main

import (
	"context"

	"github.com/tournevent/rating/internal/config"
	"github.com/tournevent/rating/internal/refdata"
	"github.com/tournevent/rating/internal/telemetry"
	"github.com/tournevent/rating/pkg/rating"
	"github.com/tournevent/rating/pkg/rating/mock"
	"github.com/tournevent/rating/pkg/rating/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTELEndpoint)
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger) *rating.Registry {
	registry := rating.NewRegistry()
	tracer := otel.GetTracerProvider().Tracer(cfg.ServiceName)

	converter := refdata.NewStaticConverter()
	geo := refdata.NewGeoResolver()

	if cfg.UPSEnabled {
		client := ups.New(ups.Config{
			Credentials: rating.Credentials{
				Username:            cfg.UPSUsername,
				Password:            cfg.UPSPassword,
				ShipperNumber:       cfg.UPSShipperNumber,
				AccessLicenseNumber: cfg.UPSAccessLicenseNumber,
				Production:          cfg.UPSProduction,
			},
			DefaultServiceCode:   cfg.UPSDefaultServiceCode,
			DefaultPackagingCode: cfg.UPSDefaultPackagingCode,
			WeightUnit:           rating.WeightUnit(cfg.UPSWeightUnit),
			DimensionUnit:        rating.DimensionUnit(cfg.UPSDimensionUnit),
			MaxWeight:            cfg.UPSMaxWeight,
			SaturdayDelivery:     cfg.UPSSaturdayDelivery,
			CODEnabled:           cfg.UPSCODEnabled,
			CODFundsCode:         cfg.UPSCODFundsCode,
			BillMyAccount:        cfg.UPSBillMyAccount,
			UseMock:              cfg.UPSUseMock,
		}, converter, geo, logger, tracer)
		registry.Register(client)
	}

	if cfg.MockCarrierEnabled {
		registry.Register(mock.New("demo"))
	}

	return registry
}
