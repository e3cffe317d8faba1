package application

import (
	rates "tariffscope/internal/rates/domain"
	"tariffscope/internal/rates/extract"
)

// SourceRecord is the structured listing row an upstream collector supplies
// when it has marketplace data for a plan. Rates arrive as cents per kWh
// averaged at the standard usage levels. Its fields map directly onto the
// rate model, so when present it is preferred over regex extraction.
type SourceRecord struct {
	RateType             string  `json:"rate_type"`
	PriceKWh500          float64 `json:"price_kwh500"`
	PriceKWh1000         float64 `json:"price_kwh1000"`
	PriceKWh2000         float64 `json:"price_kwh2000"`
	RenewableDescription string  `json:"renewable_energy_description"`
	PricingDetails       string  `json:"pricing_details"`
	SpecialTerms         string  `json:"special_terms"`
	TimeOfUse            bool    `json:"timeofuse"`
	Prepaid              bool    `json:"prepaid"`
	NewCustomerOnly      bool    `json:"new_customer"`
}

// sourceDeliveryRate is the standard delivery estimate attached to listing
// data, which never separates delivery from the bundled rate.
const sourceDeliveryRate = 0.04

// RateModelFromSource maps a listing row onto a rate model: a simplified
// three-band tier list from the averaged rates, no separate base charge, and
// the standard delivery estimate.
func RateModelFromSource(rec SourceRecord) rates.RateModel {
	end500 := 500
	end2000 := 2000
	tiers := []rates.Tier{
		{StartKWh: 0, EndKWh: &end500, RatePerKWh: rec.PriceKWh500 / 100},
		{StartKWh: 500, EndKWh: &end2000, RatePerKWh: rec.PriceKWh1000 / 100},
		{StartKWh: 2000, RatePerKWh: rec.PriceKWh2000 / 100},
	}

	kind := rates.PlanKindVariable
	if rec.RateType == "Fixed" {
		kind = rates.PlanKindFixed
	}

	delivery := sourceDeliveryRate
	return rates.RateModel{
		PlanKind:           kind,
		BaseCharge:         0,
		Tiers:              tiers,
		DeliveryRatePerKWh: &delivery,
		RenewablePercent:   extract.RenewablePercent(rec.RenewableDescription),
		TimeOfUse:          rec.TimeOfUse,
		TerminationFee:     extract.FirstDollarAmount(rec.PricingDetails),
	}
}
