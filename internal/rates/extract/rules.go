package extract

import (
	"regexp"
	"strconv"
)

// amountRule is one step of an ordered fallback chain: a label pattern plus
// the parser for its first capture group. Chains are walked in order and the
// first rule whose pattern matches and whose parser accepts wins.
type amountRule struct {
	pattern *regexp.Regexp
	parse   func(literal string) (float64, bool)
}

func runAmountRules(text string, rules []amountRule) (float64, bool) {
	for _, rule := range rules {
		match := rule.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if value, ok := rule.parse(match[1]); ok {
			return value, true
		}
	}
	return 0, false
}

// parseDollars reads a plain dollar literal such as "9.95".
func parseDollars(literal string) (float64, bool) {
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parsePerKWh reads a per-kWh literal and normalizes cents to dollars.
func parsePerKWh(literal string) (float64, bool) {
	value, ok := parseDollars(literal)
	if !ok {
		return 0, false
	}
	return perKWhRate(value), true
}

var (
	baseChargeRules = []amountRule{
		{regexp.MustCompile(`(?i)base\s+charge[:\s]+\$?([0-9.]+)`), parseDollars},
		{regexp.MustCompile(`(?i)monthly\s+charge[:\s]+\$?([0-9.]+)`), parseDollars},
		{regexp.MustCompile(`(?i)customer\s+charge[:\s]+\$?([0-9.]+)`), parseDollars},
	}

	deliveryRateRules = []amountRule{
		{regexp.MustCompile(`(?i)tdu.*?\$?([0-9.]+)\s*(?:per\s+kwh|/kwh|¢)`), parsePerKWh},
		{regexp.MustCompile(`(?i)tdsp.*?\$?([0-9.]+)\s*(?:per\s+kwh|/kwh|¢)`), parsePerKWh},
		{regexp.MustCompile(`(?i)delivery.*?\$?([0-9.]+)\s*(?:per\s+kwh|/kwh|¢)`), parsePerKWh},
	}

	terminationFeeRules = []amountRule{
		{regexp.MustCompile(`(?i)early\s+termination.*?\$?([0-9.]+)`), parseDollars},
		{regexp.MustCompile(`(?i)cancellation.*?fee.*?\$?([0-9.]+)`), parseDollars},
		{regexp.MustCompile(`(?i)termination.*?fee.*?\$?([0-9.]+)`), parseDollars},
	}
)

var (
	// tierPattern matches band lines like "0-500 kWh @ $0.095/kWh",
	// "501-2000 kWh: $0.085 per kWh" or "Above 2000 kWh 8.0¢".
	tierPattern = regexp.MustCompile(`(?i)(\d+)\s*-?\s*(\d+)?\s*kwh.*?\$?([0-9.]+)\s*(?:per\s+kwh|/kwh|¢)`)

	// flatRatePattern is the fallback when no band line matches.
	flatRatePattern = regexp.MustCompile(`(?i)energy\s+charge[:\s]+\$?([0-9.]+)\s*(?:per\s+kwh|/kwh|¢)`)

	renewablePattern = regexp.MustCompile(`(?i)(\d+)%?\s*renewable`)

	dollarAmountPattern = regexp.MustCompile(`\$(\d+(?:\.\d+)?)`)
)

var timeOfUseKeywords = []string{"time of use", "time-of-use", "peak hours", "off-peak"}
