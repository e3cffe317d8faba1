package extract

import "testing"

func TestPerKWhRateCentsConversion(t *testing.T) {
	// A literal like 9.5 appears in cents and becomes 0.095; a literal
	// already in dollars is left alone.
	if got := perKWhRate(9.5); got != 0.095 {
		t.Fatalf("perKWhRate(9.5) = %v, want 0.095", got)
	}
	if got := perKWhRate(0.095); got != 0.095 {
		t.Fatalf("perKWhRate(0.095) = %v, want 0.095", got)
	}
	if got := perKWhRate(12); got != 0.12 {
		t.Fatalf("perKWhRate(12) = %v, want 0.12", got)
	}
}

func TestPerKWhRateDollarBoundary(t *testing.T) {
	// Known limitation: a genuine $1.50/kWh rate would be misread as cents.
	// The heuristic assumes no real per-kWh rate exceeds $1.
	if got := perKWhRate(1.5); got != 0.015 {
		t.Fatalf("perKWhRate(1.5) = %v, want 0.015 (cents interpretation)", got)
	}
	// Exactly 1 stays in dollars.
	if got := perKWhRate(1); got != 1.0 {
		t.Fatalf("perKWhRate(1) = %v, want 1", got)
	}
}
