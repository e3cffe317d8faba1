// Package pricing converts a rate model into standardized cost breakdowns at
// fixed usage checkpoints. Everything here is pure and total: degenerate
// inputs (zero usage, empty tier list, usage beyond bounded capacity) resolve
// to deterministic fallbacks, never errors.
package pricing

import (
	"fmt"

	rates "tariffscope/internal/rates/domain"
)

// Allocate partitions usage across tiers in order and prices each slice.
//
// With no tiers it emits a single synthetic tier at defaultRate covering all
// usage, marked Default so it is distinguishable from extracted tiers. Tiers
// after the point where usage is exhausted are omitted. Usage beyond the
// capacity of an all-bounded tier list is silently uncosted; that boundary is
// pinned by test rather than papered over.
func Allocate(tiers []rates.Tier, usageKWh int, defaultRate float64) []rates.TierCost {
	if len(tiers) == 0 {
		return []rates.TierCost{{
			Label:   "0+",
			KWh:     usageKWh,
			Rate:    defaultRate,
			Cost:    float64(usageKWh) * defaultRate,
			Default: true,
		}}
	}

	var breakdown []rates.TierCost
	remaining := usageKWh
	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}
		var used int
		var label string
		if tier.EndKWh == nil {
			used = remaining
			label = fmt.Sprintf("%d+", tier.StartKWh)
		} else {
			capacity := *tier.EndKWh - tier.StartKWh
			used = remaining
			if capacity < used {
				used = capacity
			}
			label = fmt.Sprintf("%d-%d", tier.StartKWh, *tier.EndKWh)
		}
		breakdown = append(breakdown, rates.TierCost{
			Label: label,
			KWh:   used,
			Rate:  tier.RatePerKWh,
			Cost:  float64(used) * tier.RatePerKWh,
		})
		remaining -= used
	}
	return breakdown
}
