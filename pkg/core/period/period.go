// Package period models the project horizon: construction years followed by
// operation years, the production-rate ramp and year-indexed value series.
package period

import (
	"project_feasibility/pkg/models"
)

// Period is the resolved project horizon.
type Period struct {
	ConstructionYears int `json:"constructionYears"`
	OperationYears    int `json:"operationYears"`
}

// FromConfig reads a Period, treating negative or fractional inputs as whole
// non-negative years. Each count is capped at models.MaxPeriodYears.
func FromConfig(p models.Period) Period {
	return Period{
		ConstructionYears: nonNegInt(p.ConstructionYears.F()),
		OperationYears:    nonNegInt(p.OperationYears.F()),
	}
}

func nonNegInt(f float64) int {
	if f <= 0 {
		return 0
	}
	if f > models.MaxPeriodYears {
		return models.MaxPeriodYears
	}
	return int(f)
}

// TotalYears returns constructionYears + operationYears.
func (p Period) TotalYears() int {
	return p.ConstructionYears + p.OperationYears
}

// AbsoluteYear maps a 1-based operation year onto the 1-based full horizon.
//
// FORMULA: absoluteYear = constructionYears + operationYear
func (p Period) AbsoluteYear(operationYear int) int {
	return p.ConstructionYears + operationYear
}

// IsConstruction reports whether the 1-based absolute year falls in construction.
func (p Period) IsConstruction(absoluteYear int) bool {
	return absoluteYear >= 1 && absoluteYear <= p.ConstructionYears
}

// FirstOperationYear returns the absolute index of operation year 1.
func (p Period) FirstOperationYear() int {
	return p.ConstructionYears + 1
}

// Expand places an operation-year series onto the full horizon, zero-filling
// the construction years.
func (p Period) Expand(operation Series) Series {
	full := make(Series, p.TotalYears())
	for i := 0; i < p.OperationYears && i < len(operation); i++ {
		full[p.ConstructionYears+i] = operation[i]
	}
	return full
}

// ExpandConstruction places a construction-year series onto the full horizon.
func (p Period) ExpandConstruction(construction Series) Series {
	full := make(Series, p.TotalYears())
	for i := 0; i < p.ConstructionYears && i < len(construction); i++ {
		full[i] = construction[i]
	}
	return full
}

// OperationSlice returns the operation years of a full-horizon series.
func (p Period) OperationSlice(full Series) Series {
	out := NewSeries(p.OperationYears)
	for i := 0; i < p.OperationYears; i++ {
		out[i] = full.At(p.ConstructionYears + i + 1)
	}
	return out
}

// YearRange returns [1..n].
func YearRange(n int) []int {
	if n <= 0 {
		return []int{}
	}
	years := make([]int, n)
	for i := range years {
		years[i] = i + 1
	}
	return years
}
