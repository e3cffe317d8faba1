package pricing

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries the pricing and classification constants. They are read-only
// after load and threaded through calls so tests and other jurisdictions can
// swap them.
type Config struct {
	// Checkpoints are the fixed usage levels (kWh/month) costs are
	// standardized at for comparison.
	Checkpoints []int `yaml:"checkpoints"`
	// DefaultFlatRatePerKWh prices usage when a model has no extracted tiers.
	DefaultFlatRatePerKWh float64 `yaml:"default_flat_rate_per_kwh"`
	// DefaultDeliveryRatePerKWh is the industry-average delivery estimate used
	// when the document states no delivery rate.
	DefaultDeliveryRatePerKWh float64 `yaml:"default_delivery_rate_per_kwh"`
	// TaxRate is a flat estimator applied to the subtotal, not a real tax
	// computation.
	TaxRate float64 `yaml:"tax_rate"`
	// HighRenewablePercent is the threshold for the "green" classification.
	HighRenewablePercent int `yaml:"high_renewable_percent"`
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{
		Checkpoints:               []int{500, 1000, 2000},
		DefaultFlatRatePerKWh:     0.10,
		DefaultDeliveryRatePerKWh: 0.04,
		TaxRate:                   0.07,
		HighRenewablePercent:      50,
	}
}

// LoadConfig starts from defaults, applies the yaml file named by
// PRICING_CONFIG when set, then env overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("PRICING_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.DefaultFlatRatePerKWh = getenvFloatDefault("DEFAULT_FLAT_RATE_PER_KWH", cfg.DefaultFlatRatePerKWh)
	cfg.DefaultDeliveryRatePerKWh = getenvFloatDefault("DEFAULT_DELIVERY_RATE_PER_KWH", cfg.DefaultDeliveryRatePerKWh)
	cfg.TaxRate = getenvFloatDefault("TAX_RATE", cfg.TaxRate)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.Checkpoints) == 0 {
		return errors.New("pricing: at least one usage checkpoint required")
	}
	for _, usage := range c.Checkpoints {
		if usage < 0 {
			return errors.New("pricing: negative usage checkpoint")
		}
	}
	if c.DefaultFlatRatePerKWh < 0 || c.DefaultDeliveryRatePerKWh < 0 || c.TaxRate < 0 {
		return errors.New("pricing: negative rate constant")
	}
	return nil
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
