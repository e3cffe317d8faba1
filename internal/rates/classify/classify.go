// Package classify derives category tags from a rate model plus optional
// listing hints. Tags are filter labels, not ground truth: they are always
// recomputed, never stored as an independent entity.
package classify

import (
	"strings"

	rates "tariffscope/internal/rates/domain"
)

// Tag values a plan may receive. Every rule applies independently, so a plan
// can carry any subset.
const (
	TagGreen           = "green"
	TagFullyRenewable  = "100_renewable"
	TagTimeOfUse       = "time_of_use"
	TagEV              = "ev"
	TagFixedRate       = "fixed_rate"
	TagVariableRate    = "variable_rate"
	TagPrepaid         = "prepaid"
	TagNewCustomerOnly = "new_customer_only"
)

// Hints are listing fields the extractor never sees, supplied by the caller
// when available. A nil Hints simply skips the hint rules.
type Hints struct {
	Name            string
	SpecialTerms    string
	Prepaid         bool
	NewCustomerOnly bool
}

// Deriver maps rate models to tag sets.
type Deriver struct {
	highRenewablePercent int
}

// NewDeriver constructs a deriver. A non-positive threshold falls back to 50.
func NewDeriver(highRenewablePercent int) *Deriver {
	if highRenewablePercent <= 0 {
		highRenewablePercent = 50
	}
	return &Deriver{highRenewablePercent: highRenewablePercent}
}

// Derive returns the tags for a model. Pure function; order follows rule
// order but callers must treat the result as a set.
func (d *Deriver) Derive(model rates.RateModel, hints *Hints) []string {
	var tags []string

	if model.RenewablePercent != nil {
		if *model.RenewablePercent >= d.highRenewablePercent {
			tags = append(tags, TagGreen)
		}
		if *model.RenewablePercent == 100 {
			tags = append(tags, TagFullyRenewable)
		}
	}

	if model.TimeOfUse || model.PlanKind == rates.PlanKindTimeOfUse {
		tags = append(tags, TagTimeOfUse)
	}

	// Bare "ev" is a substring match and is known to false-positive on words
	// like "every"; kept to match upstream listing behavior.
	if hints != nil {
		name := strings.ToLower(hints.Name)
		terms := strings.ToLower(hints.SpecialTerms)
		if strings.Contains(name, "ev") || strings.Contains(name, "electric vehicle") || strings.Contains(terms, "ev") {
			tags = append(tags, TagEV)
		}
	}

	switch model.PlanKind {
	case rates.PlanKindFixed:
		tags = append(tags, TagFixedRate)
	case rates.PlanKindVariable:
		tags = append(tags, TagVariableRate)
	}

	if hints != nil && hints.Prepaid {
		tags = append(tags, TagPrepaid)
	}
	if hints != nil && hints.NewCustomerOnly {
		tags = append(tags, TagNewCustomerOnly)
	}

	return tags
}
