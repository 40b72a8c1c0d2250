// Package calc provides deterministic discounting calculations for the
// feasibility model: present value, NPV, IRR and payback periods.
package calc

import (
	"errors"
	"math"
)

// ErrNotConverged is returned when no internal rate of return can be found.
var ErrNotConverged = errors.New("irr did not converge")

// IRR search parameters.
const (
	irrGuess         = 0.1
	irrMaxIterations = 200
	irrTolerance     = 1e-7
	irrLowerBound    = -0.99
	irrUpperBound    = 10.0
)

// =============================================================================
// DISCOUNTING
// =============================================================================

// PresentValue calculates PV of a single cash flow.
//
// FORMULA: PV = CF / (1 + r)^t
func PresentValue(cashFlow, discountRate float64, periods int) float64 {
	if periods < 0 {
		return 0
	}
	return cashFlow / math.Pow(1+discountRate, float64(periods))
}

// NPV calculates the net present value of a series of year-end cash flows.
//
// FORMULA: NPV = Σ [ CF_t / (1 + r)^t ],  t = 1..n
func NPV(cashFlows []float64, discountRate float64) float64 {
	var pv float64
	for t, cf := range cashFlows {
		pv += cf / math.Pow(1+discountRate, float64(t+1))
	}
	return pv
}

// Discount returns each cash flow discounted to year 0.
func Discount(cashFlows []float64, discountRate float64) []float64 {
	out := make([]float64, len(cashFlows))
	for t, cf := range cashFlows {
		out[t] = PresentValue(cf, discountRate, t+1)
	}
	return out
}

// =============================================================================
// INTERNAL RATE OF RETURN
// =============================================================================

// IRR finds the rate at which NPV is zero.
//
// Newton-Raphson from 0.1 first; when it leaves [-0.99, 10] or stalls, the
// root is bracketed on that interval and bisected. Returns ErrNotConverged
// when neither finds a root (e.g. all flows of one sign).
func IRR(cashFlows []float64) (float64, error) {
	if !hasSignChange(cashFlows) {
		return 0, ErrNotConverged
	}
	if r, ok := newton(cashFlows); ok {
		return r, nil
	}
	if r, ok := bisect(cashFlows); ok {
		return r, nil
	}
	return 0, ErrNotConverged
}

func hasSignChange(cashFlows []float64) bool {
	var pos, neg bool
	for _, cf := range cashFlows {
		if cf > 0 {
			pos = true
		} else if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// npvAndDerivative evaluates NPV and dNPV/dr with exponents starting at 0.
// The root is the same as for NPV with exponents starting at 1.
func npvAndDerivative(cashFlows []float64, r float64) (float64, float64) {
	var npv, d float64
	for j, cf := range cashFlows {
		f := math.Pow(1+r, float64(j))
		npv += cf / f
		d -= float64(j) * cf / (f * (1 + r))
	}
	return npv, d
}

func newton(cashFlows []float64) (float64, bool) {
	r := irrGuess
	for i := 0; i < irrMaxIterations; i++ {
		npv, d := npvAndDerivative(cashFlows, r)
		if math.Abs(npv) < irrTolerance {
			return r, true
		}
		if d == 0 || math.IsNaN(d) {
			return 0, false
		}
		next := r - npv/d
		if next <= irrLowerBound || next > irrUpperBound || math.IsNaN(next) {
			return 0, false
		}
		if math.Abs(next-r) < irrTolerance {
			return next, true
		}
		r = next
	}
	return 0, false
}

func bisect(cashFlows []float64) (float64, bool) {
	lo, hi := irrLowerBound, irrUpperBound
	fLo, _ := npvAndDerivative(cashFlows, lo)
	fHi, _ := npvAndDerivative(cashFlows, hi)
	if fLo*fHi > 0 {
		return 0, false
	}
	for i := 0; i < irrMaxIterations; i++ {
		mid := (lo + hi) / 2
		fMid, _ := npvAndDerivative(cashFlows, mid)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, true
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return 0, false
}

// =============================================================================
// PAYBACK
// =============================================================================

// Payback is the investment recovery period in years. The zero value means
// the cash flow never required recovery.
type Payback struct {
	Years     float64 `json:"years"`
	Recovered bool    `json:"recovered"`
}

// PaybackPeriod finds the first year whose cumulative cash flow turns
// non-negative after having been negative, interpolated within that year.
//
// FORMULA: payback = i + |cumulative_{i-1}| / CF_i   (i = 0-based year)
//
// Returns len+1 with Recovered=false when the cumulative never turns back,
// and the zero Payback when it is never negative: with no outlay there is
// nothing to recover.
func PaybackPeriod(cashFlows []float64) Payback {
	var cumulative float64
	invested := false
	for i, cf := range cashFlows {
		prev := cumulative
		cumulative += cf
		if cumulative < 0 {
			invested = true
			continue
		}
		if !invested {
			continue
		}
		// prev < 0 <= cumulative, so cf > 0
		return Payback{Years: float64(i) + math.Abs(prev)/cf, Recovered: true}
	}
	if !invested {
		return Payback{}
	}
	return Payback{Years: float64(len(cashFlows) + 1), Recovered: false}
}
