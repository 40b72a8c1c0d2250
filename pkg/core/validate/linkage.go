package validate

import (
	"fmt"
	"math"

	"project_feasibility/pkg/core/period"
)

// =============================================================================
// CROSS-TABLE LINKAGE VALIDATION (跨表勾稽验证)
// =============================================================================

// DefaultTolerance is the absolute difference (10k-yuan) tolerated per year.
const DefaultTolerance = 1e-6

// Linkage compares the same quantity as derived by two tables.
type Linkage struct {
	Name       string  `json:"name"`
	Year       int     `json:"year,omitempty"` // first failing year, 1-based
	Expected   float64 `json:"expected"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
	Passed     bool    `json:"passed"`
}

// LinkageReport holds every linkage check of one projection.
type LinkageReport struct {
	Checks       []Linkage `json:"checks"`
	AllPassed    bool      `json:"all_passed"`
	FailedChecks []string  `json:"failed_checks,omitempty"`
}

// SeriesLinkage checks expected == actual year by year and reports the first
// year that differs beyond tolerance.
func SeriesLinkage(name string, expected, actual period.Series, tolerance float64) Linkage {
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		e, a := expected.At(i+1), actual.At(i+1)
		if diff := a - e; math.Abs(diff) > tolerance {
			return Linkage{Name: name, Year: i + 1, Expected: e, Actual: a, Difference: diff}
		}
	}
	return Linkage{Name: name, Expected: expected.Sum(), Actual: actual.Sum(), Passed: true}
}

// ValueLinkage checks two scalars.
func ValueLinkage(name string, expected, actual, tolerance float64) Linkage {
	diff := actual - expected
	return Linkage{
		Name:       name,
		Expected:   expected,
		Actual:     actual,
		Difference: diff,
		Passed:     math.Abs(diff) <= tolerance,
	}
}

// NewLinkageReport aggregates checks.
func NewLinkageReport(checks ...Linkage) *LinkageReport {
	rep := &LinkageReport{Checks: checks, AllPassed: true}
	for _, c := range checks {
		if !c.Passed {
			rep.AllPassed = false
			rep.FailedChecks = append(rep.FailedChecks, c.Name)
		}
	}
	return rep
}

// Into records every failed check as an INVALID_AMOUNT error.
func (l *LinkageReport) Into(r *Report) {
	for _, c := range l.Checks {
		if c.Passed {
			continue
		}
		msg := fmt.Sprintf("expected %.6f, got %.6f (diff %.6f)", c.Expected, c.Actual, c.Difference)
		if c.Year > 0 {
			msg = fmt.Sprintf("year %d: %s", c.Year, msg)
		}
		r.Errorf(CodeInvalidAmount, "linkage."+c.Name, "%s", msg)
	}
}
