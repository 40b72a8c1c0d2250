// Package loan builds the repayment schedule of the project loan over the
// operation years and the coverage ratios derived from it.
package loan

import (
	"math"

	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"
)

const monthsPerYear = 12

// Schedule is the loan rollforward per operation year.
type Schedule struct {
	Method    string
	Opening   period.Series
	Principal period.Series
	Interest  period.Series
	Closing   period.Series
	// Invalid is set when a principal is configured without a usable term.
	Invalid bool
}

// DebtService returns principal + interest per year.
func (s Schedule) DebtService() period.Series {
	return s.Principal.Add(s.Interest)
}

// Compute dispatches on the repayment method. Repayment starts in operation
// year 1; the grace period is reserved and not applied.
func Compute(terms models.LoanTerms, operationYears int) Schedule {
	switch terms.RepaymentMethod {
	case models.RepaymentEqualInstallment:
		return EqualInstallment(terms.Principal.F(), terms.AnnualRate.F(), terms.TermYears.F(), operationYears)
	default:
		return EqualPrincipal(terms.Principal.F(), terms.AnnualRate.F(), terms.TermYears.F(), operationYears)
	}
}

func newSchedule(method string, years int) Schedule {
	return Schedule{
		Method:    method,
		Opening:   period.NewSeries(years),
		Principal: period.NewSeries(years),
		Interest:  period.NewSeries(years),
		Closing:   period.NewSeries(years),
	}
}

// EqualPrincipal repays the same principal every month with interest on the
// mid-year balance.
//
// FORMULA (year i, 0-based):
//
//	monthlyPrincipal = principal / (termYears × 12)
//	opening          = principal - monthlyPrincipal × 12i
//	yearPrincipal    = monthlyPrincipal × min(12, totalMonths - 12i)
//	interest         = max(0, (opening - yearPrincipal/2) × annualRate)
//
// The final repayment year takes the remaining balance so Σ principal equals
// the loan exactly.
func EqualPrincipal(principal, annualRate, termYears float64, operationYears int) Schedule {
	s := newSchedule(models.RepaymentEqualPrincipal, operationYears)
	totalMonths := int(math.Round(termYears * monthsPerYear))
	if principal <= 0 {
		return s
	}
	if totalMonths <= 0 {
		s.Invalid = true
		return s
	}

	monthly := principal / float64(totalMonths)
	for i := 0; i < operationYears; i++ {
		opening := principal - monthly*float64(i*monthsPerYear)
		remainingMonths := totalMonths - i*monthsPerYear
		if remainingMonths <= 0 || opening <= 1e-9 {
			break
		}

		months := remainingMonths
		if months > monthsPerYear {
			months = monthsPerYear
		}
		yearPrincipal := monthly * float64(months)
		if remainingMonths <= monthsPerYear {
			yearPrincipal = opening
		}

		s.Opening[i] = opening
		s.Principal[i] = yearPrincipal
		s.Interest[i] = math.Max(0, (opening-yearPrincipal/2)*annualRate)
		s.Closing[i] = opening - yearPrincipal
	}
	return s
}

// EqualInstallment repays a level monthly annuity, aggregated per year.
//
// FORMULA: payment = P × m × (1+m)^n / ((1+m)^n - 1), m = annualRate/12
//
// A zero rate degenerates to P / n.
func EqualInstallment(principal, annualRate, termYears float64, operationYears int) Schedule {
	s := newSchedule(models.RepaymentEqualInstallment, operationYears)
	n := int(math.Round(termYears * monthsPerYear))
	if principal <= 0 {
		return s
	}
	if n <= 0 {
		s.Invalid = true
		return s
	}

	m := annualRate / monthsPerYear
	payment := principal / float64(n)
	if m != 0 {
		growth := math.Pow(1+m, float64(n))
		payment = principal * m * growth / (growth - 1)
	}

	balance := principal
	month := 0
	for i := 0; i < operationYears && month < n; i++ {
		s.Opening[i] = balance
		for k := 0; k < monthsPerYear && month < n; k++ {
			interest := balance * m
			repaid := payment - interest
			month++
			if month == n {
				repaid = balance
			}
			s.Interest[i] += interest
			s.Principal[i] += repaid
			balance -= repaid
		}
		s.Closing[i] = balance
	}
	return s
}

// =============================================================================
// COVERAGE RATIOS
// =============================================================================

// Coverage returns the interest coverage and debt service coverage ratios.
//
// FORMULA:
//
//	ICR  = EBIT / interest
//	DSCR = (EBITDA - incomeTax) / (interest + principal)
//
// Years without interest (or without debt service) carry 0.
func Coverage(ebit, ebitda, incomeTax period.Series, s Schedule) (icr, dscr period.Series) {
	n := len(s.Interest)
	icr = period.NewSeries(n)
	dscr = period.NewSeries(n)
	for i := 0; i < n; i++ {
		interest := s.Interest[i]
		service := interest + s.Principal[i]
		if interest > 0 {
			icr[i] = ebit.At(i+1) / interest
		}
		if service > 0 {
			dscr[i] = (ebitda.At(i+1) - incomeTax.At(i+1)) / service
		}
	}
	return icr, dscr
}

// AverageNonZero averages the years that carry a ratio.
func AverageNonZero(s period.Series) float64 {
	var sum float64
	var count int
	for _, v := range s {
		if v != 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
