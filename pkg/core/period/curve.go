package period

import (
	"project_feasibility/pkg/models"
)

// Curve maps 1-based operation years to a production (capacity) rate.
type Curve map[int]float64

// DefaultCurve generates the standard ramp: 0.75, 0.85, then 1.00.
func DefaultCurve(operationYears int) Curve {
	c := make(Curve, operationYears)
	for _, y := range YearRange(operationYears) {
		switch y {
		case 1:
			c[y] = 0.75
		case 2:
			c[y] = 0.85
		default:
			c[y] = 1.0
		}
	}
	return c
}

// CurveFromConfig builds a curve from configured rates, falling back to the
// default ramp when none are configured.
func CurveFromConfig(rates []models.ProductionRate, operationYears int) Curve {
	if len(rates) == 0 {
		return DefaultCurve(operationYears)
	}
	c := make(Curve, len(rates))
	for _, r := range rates {
		c[r.YearIndex.Int()] = r.Rate.F()
	}
	return c
}

// Rate returns the configured rate for the year, 1.0 if none.
func (c Curve) Rate(year int) float64 {
	if r, ok := c[year]; ok {
		return r
	}
	return 1.0
}
