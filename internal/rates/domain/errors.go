package rates

import "errors"

var (
	// ErrTierOverlap is returned when consecutive tiers overlap.
	ErrTierOverlap = errors.New("rates: overlapping tiers")
	// ErrUnboundedTierNotLast is returned when an open-ended tier is followed by another.
	ErrUnboundedTierNotLast = errors.New("rates: unbounded tier must be last")
	// ErrNegativeTierBound is returned when a tier bound or rate is negative.
	ErrNegativeTierBound = errors.New("rates: negative tier bound or rate")
	// ErrEmptyTierRange is returned when a bounded tier ends at or before its start.
	ErrEmptyTierRange = errors.New("rates: empty tier range")
	// ErrPlanNotFound is returned when a plan record does not exist.
	ErrPlanNotFound = errors.New("rates: plan not found")
	// ErrNilRecord is returned when saving a nil plan record.
	ErrNilRecord = errors.New("rates: nil plan record")
)
