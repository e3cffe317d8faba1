// Package extract turns free-form disclosure document text into a rate
// model. Every field has an ordered chain of label patterns with a documented
// default, so extraction never fails outright: a pattern miss degrades to the
// field's default and leaves the other fields untouched.
package extract

import (
	"strconv"
	"strings"

	rates "tariffscope/internal/rates/domain"
)

// Extract builds a fully populated rate model from document text. Pure
// function; safe for concurrent use.
func Extract(text string) rates.RateModel {
	return rates.RateModel{
		PlanKind:           planKind(text),
		BaseCharge:         baseCharge(text),
		Tiers:              tiers(text),
		DeliveryRatePerKWh: deliveryRate(text),
		RenewablePercent:   RenewablePercent(text),
		TimeOfUse:          hasTimeOfUse(text),
		TerminationFee:     terminationFee(text),
	}
}

func planKind(text string) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "time of use") || strings.Contains(lower, "time-of-use") {
		return rates.PlanKindTimeOfUse
	}
	if strings.Contains(lower, "variable") && strings.Contains(lower, "price") {
		return rates.PlanKindVariable
	}
	return rates.PlanKindFixed
}

func baseCharge(text string) float64 {
	if value, ok := runAmountRules(text, baseChargeRules); ok {
		return value
	}
	return 0
}

func tiers(text string) []rates.Tier {
	var result []rates.Tier
	for _, match := range tierPattern.FindAllStringSubmatch(text, -1) {
		start, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		rate, ok := parsePerKWh(match[3])
		if !ok {
			continue
		}
		tier := rates.Tier{StartKWh: start, RatePerKWh: rate}
		if match[2] != "" {
			end, err := strconv.Atoi(match[2])
			if err != nil {
				continue
			}
			tier.EndKWh = &end
		}
		result = append(result, tier)
	}
	if result != nil {
		return result
	}

	// No band lines; fall back to a single flat energy charge covering all
	// usage. If that misses too, the tier list stays empty and the cost
	// normalizer applies its own flat-rate default.
	match := flatRatePattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	rate, ok := parsePerKWh(match[1])
	if !ok {
		return nil
	}
	return []rates.Tier{{StartKWh: 0, RatePerKWh: rate}}
}

func deliveryRate(text string) *float64 {
	if value, ok := runAmountRules(text, deliveryRateRules); ok {
		return &value
	}
	return nil
}

func terminationFee(text string) *float64 {
	if value, ok := runAmountRules(text, terminationFeeRules); ok {
		return &value
	}
	return nil
}

func hasTimeOfUse(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range timeOfUseKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// RenewablePercent reads a "<n>% renewable" mention from text. Exported
// because listing descriptions ("100% Renewable") go through the same rule.
func RenewablePercent(text string) *int {
	match := renewablePattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	pct, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &pct
}

// FirstDollarAmount reads the first "$<n>" amount from text, used for
// cancellation fees quoted inside listing pricing details.
func FirstDollarAmount(text string) *float64 {
	match := dollarAmountPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	return &value
}
