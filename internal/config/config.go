package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// UPS account
	UPSUsername            string `envconfig:"UPS_USERNAME"`
	UPSPassword            string `envconfig:"UPS_PASSWORD"`
	UPSShipperNumber       string `envconfig:"UPS_SHIPPER_NUMBER"`
	UPSAccessLicenseNumber string `envconfig:"UPS_ACCESS_LICENSE_NUMBER"`
	UPSProduction          bool   `envconfig:"UPS_PRODUCTION" default:"false"`

	// UPS rating defaults
	UPSDefaultServiceCode   string  `envconfig:"UPS_DEFAULT_SERVICE_CODE" default:"03"`
	UPSDefaultPackagingCode string  `envconfig:"UPS_DEFAULT_PACKAGING_CODE" default:"02"`
	UPSWeightUnit           string  `envconfig:"UPS_WEIGHT_UNIT" default:"LBS"`
	UPSDimensionUnit        string  `envconfig:"UPS_DIMENSION_UNIT" default:"IN"`
	UPSMaxWeight            float64 `envconfig:"UPS_MAX_WEIGHT" default:"0"`
	UPSSaturdayDelivery     bool    `envconfig:"UPS_SATURDAY_DELIVERY" default:"false"`
	UPSCODEnabled           bool    `envconfig:"UPS_COD_ENABLED" default:"false"`
	UPSCODFundsCode         string  `envconfig:"UPS_COD_FUNDS_CODE" default:"0"`
	UPSBillMyAccount        bool    `envconfig:"UPS_BILL_MY_ACCOUNT" default:"false"`
	UPSEnabled              bool    `envconfig:"UPS_ENABLED" default:"true"`
	UPSUseMock              bool    `envconfig:"UPS_USE_MOCK" default:"false"`

	// Demo carrier used in local development and smoke tests.
	MockCarrierEnabled bool `envconfig:"MOCK_CARRIER_ENABLED" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:""`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"delivro-rating"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for internal consistency. UPS
// credentials are only required when the carrier runs against the real API.
func (c *Config) Validate() error {
	needsCreds := c.UPSEnabled && !c.UPSUseMock

	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.UPSUsername, validation.Required.When(needsCreds)),
		validation.Field(&c.UPSPassword, validation.Required.When(needsCreds)),
		validation.Field(&c.UPSShipperNumber, validation.Required.When(needsCreds)),
		validation.Field(&c.UPSAccessLicenseNumber, validation.Required.When(needsCreds)),
		validation.Field(&c.UPSWeightUnit, validation.In("KGS", "LBS")),
		validation.Field(&c.UPSDimensionUnit, validation.In("CM", "IN")),
		validation.Field(&c.UPSCODFundsCode, validation.In("0", "8")),
	)
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ups.enabled", c.UPSEnabled),
		attribute.Bool("ups.production", c.UPSProduction),
	}
}
