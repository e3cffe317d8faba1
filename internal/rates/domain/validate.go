package rates

// ValidateTiers checks the tier-list shape the allocator assumes: bounds and
// rates are non-negative, tiers are ordered without overlap, and at most the
// final tier is unbounded. Gaps are tolerated because disclosure documents
// label bands like "0-500" and "501-2000".
//
// The extractor always produces lists of this shape; callers building models
// by hand should validate at construction time. The allocator itself does not
// re-check.
func ValidateTiers(tiers []Tier) error {
	for i, tier := range tiers {
		if tier.StartKWh < 0 || tier.RatePerKWh < 0 {
			return ErrNegativeTierBound
		}
		if tier.EndKWh == nil {
			if i != len(tiers)-1 {
				return ErrUnboundedTierNotLast
			}
			continue
		}
		if *tier.EndKWh <= tier.StartKWh {
			return ErrEmptyTierRange
		}
		if i+1 < len(tiers) && tiers[i+1].StartKWh < *tier.EndKWh {
			return ErrTierOverlap
		}
	}
	return nil
}
