package pricing

import (
	"fmt"
	"math"

	rates "tariffscope/internal/rates/domain"
)

// Normalizer computes cost breakdowns for rate models under a fixed Config.
// Stateless after construction; safe for concurrent use.
type Normalizer struct {
	cfg Config
}

// NewNormalizer constructs a normalizer, filling zero config fields from the
// defaults.
func NewNormalizer(cfg Config) *Normalizer {
	defaults := DefaultConfig()
	if len(cfg.Checkpoints) == 0 {
		cfg.Checkpoints = defaults.Checkpoints
	}
	if cfg.DefaultFlatRatePerKWh == 0 {
		cfg.DefaultFlatRatePerKWh = defaults.DefaultFlatRatePerKWh
	}
	if cfg.DefaultDeliveryRatePerKWh == 0 {
		cfg.DefaultDeliveryRatePerKWh = defaults.DefaultDeliveryRatePerKWh
	}
	if cfg.TaxRate == 0 {
		cfg.TaxRate = defaults.TaxRate
	}
	return &Normalizer{cfg: cfg}
}

// Config returns the constants the normalizer prices with.
func (n *Normalizer) Config() Config { return n.cfg }

// Normalize prices a model at one usage level. Monetary fields round to two
// decimals, the average rate to four; zero usage yields a zero average rate.
func (n *Normalizer) Normalize(model rates.RateModel, usageKWh int) rates.CostBreakdown {
	breakdown := Allocate(model.Tiers, usageKWh, n.cfg.DefaultFlatRatePerKWh)

	var energy float64
	for _, tier := range breakdown {
		energy += tier.Cost
	}

	deliveryRate := n.cfg.DefaultDeliveryRatePerKWh
	if model.DeliveryRatePerKWh != nil {
		deliveryRate = *model.DeliveryRatePerKWh
	}
	delivery := float64(usageKWh) * deliveryRate

	subtotal := model.BaseCharge + energy + delivery
	taxes := subtotal * n.cfg.TaxRate
	total := subtotal + taxes

	averageRate := 0.0
	if usageKWh > 0 {
		averageRate = energy / float64(usageKWh)
	}

	return rates.CostBreakdown{
		UsageKWh:          usageKWh,
		BaseCharge:        round2(model.BaseCharge),
		EnergyCharge:      round2(energy),
		DeliveryCharge:    round2(delivery),
		TaxesAndFees:      round2(taxes),
		Total:             round2(total),
		AverageEnergyRate: round4(averageRate),
		TierBreakdown:     breakdown,
	}
}

// AllCheckpoints prices a model at every configured checkpoint, keyed by
// checkpoint label.
func (n *Normalizer) AllCheckpoints(model rates.RateModel) map[string]rates.CostBreakdown {
	result := make(map[string]rates.CostBreakdown, len(n.cfg.Checkpoints))
	for _, usage := range n.cfg.Checkpoints {
		result[CheckpointLabel(usage)] = n.Normalize(model, usage)
	}
	return result
}

// CheckpointLabel names a usage checkpoint, e.g. "cost_1000_kwh".
func CheckpointLabel(usageKWh int) string {
	return fmt.Sprintf("cost_%d_kwh", usageKWh)
}

func round2(value float64) float64 { return math.Round(value*100) / 100 }

func round4(value float64) float64 { return math.Round(value*10000) / 10000 }
