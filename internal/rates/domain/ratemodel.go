package rates

import "time"

// Plan kinds derived from disclosure text. Time-of-use takes precedence over
// variable, variable over fixed.
const (
	PlanKindFixed     = "fixed"
	PlanKindVariable  = "variable"
	PlanKindTimeOfUse = "time_of_use"
)

// Tier is one kWh usage band with its own per-kWh rate. A nil EndKWh means
// the tier is unbounded and must be the last one.
type Tier struct {
	StartKWh   int     `json:"start_kwh"`
	EndKWh     *int    `json:"end_kwh"`
	RatePerKWh float64 `json:"rate_per_kwh"`
}

// RateModel is the canonical structured representation of one tariff. It is
// built once per source document and never mutated; a field correction means
// building a new model.
type RateModel struct {
	PlanKind           string   `json:"plan_kind"`
	BaseCharge         float64  `json:"base_charge"`
	Tiers              []Tier   `json:"tiers"`
	DeliveryRatePerKWh *float64 `json:"delivery_rate_per_kwh"`
	RenewablePercent   *int     `json:"renewable_percent"`
	TimeOfUse          bool     `json:"time_of_use"`
	TerminationFee     *float64 `json:"termination_fee"`
}

// PlanRecord bundles one plan's metadata with its rate model and the derived
// cost breakdowns and classification tags. Breakdowns and tags are caches:
// they are recomputed from the rate model, never edited in place.
type PlanRecord struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Provider        string                   `json:"provider"`
	ZipCode         string                   `json:"zip_code"`
	ContractMonths  *int                     `json:"contract_length_months"`
	RateModel       RateModel                `json:"rate_structure"`
	Costs           map[string]CostBreakdown `json:"costs"`
	Classifications []string                 `json:"classifications"`
	DocumentURL     string                   `json:"efl_url"`
	Parsed          bool                     `json:"efl_parsed"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// Clone returns a detached deep copy of the record.
func (p *PlanRecord) Clone() *PlanRecord {
	if p == nil {
		return nil
	}
	out := *p
	out.RateModel = p.RateModel.clone()
	if p.Costs != nil {
		out.Costs = make(map[string]CostBreakdown, len(p.Costs))
		for label, breakdown := range p.Costs {
			breakdown.TierBreakdown = append([]TierCost(nil), breakdown.TierBreakdown...)
			out.Costs[label] = breakdown
		}
	}
	out.Classifications = append([]string(nil), p.Classifications...)
	return &out
}

func (m RateModel) clone() RateModel {
	out := m
	if m.Tiers != nil {
		out.Tiers = make([]Tier, len(m.Tiers))
		for i, tier := range m.Tiers {
			out.Tiers[i] = tier
			if tier.EndKWh != nil {
				end := *tier.EndKWh
				out.Tiers[i].EndKWh = &end
			}
		}
	}
	if m.DeliveryRatePerKWh != nil {
		rate := *m.DeliveryRatePerKWh
		out.DeliveryRatePerKWh = &rate
	}
	if m.RenewablePercent != nil {
		pct := *m.RenewablePercent
		out.RenewablePercent = &pct
	}
	if m.TerminationFee != nil {
		fee := *m.TerminationFee
		out.TerminationFee = &fee
	}
	return out
}
