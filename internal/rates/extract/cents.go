package extract

// perKWhRate normalizes a captured per-kWh literal to dollars. Energy rates
// quoted in dollars are always below $1, so a larger literal is taken to be
// cents and divided by 100. A genuine rate at or above $1/kWh would be
// misread; TestPerKWhRateDollarBoundary pins that behavior.
func perKWhRate(value float64) float64 {
	if value > 1 {
		return value / 100
	}
	return value
}
