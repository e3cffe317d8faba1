package rates

// TierCost is the cost attributed to a single tier at a usage level. Bounded
// tiers are labelled "start-end", the unbounded tier "start+". Default marks
// the synthetic flat-rate tier used when a model has no extracted tiers.
type TierCost struct {
	Label   string  `json:"tier_label"`
	KWh     int     `json:"kwh_in_tier"`
	Rate    float64 `json:"rate"`
	Cost    float64 `json:"cost"`
	Default bool    `json:"default,omitempty"`
}

// CostBreakdown is the standardized monthly cost at one usage checkpoint.
// Total equals base + energy + delivery + taxes within rounding tolerance.
type CostBreakdown struct {
	UsageKWh          int        `json:"usage_kwh"`
	BaseCharge        float64    `json:"base_charge"`
	EnergyCharge      float64    `json:"energy_charge"`
	DeliveryCharge    float64    `json:"delivery_charge"`
	TaxesAndFees      float64    `json:"taxes_and_fees"`
	Total             float64    `json:"total"`
	AverageEnergyRate float64    `json:"average_energy_rate"`
	TierBreakdown     []TierCost `json:"tier_breakdown"`
}
