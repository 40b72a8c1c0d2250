// Package investment places construction investment, construction-period
// interest, working capital, maintenance investment and subsidies onto the
// full project horizon.
package investment

import (
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"
)

// Plan is the investment schedule over the full horizon (absolute years).
type Plan struct {
	Construction period.Series
	// ConstructionInterest is the loan interest capitalized while building.
	ConstructionInterest period.Series
	WorkingCapital       period.Series
	// WorkingCapitalRecovery returns the working capital in the final year.
	WorkingCapitalRecovery period.Series
	Maintenance            period.Series
	Subsidy                period.Series
}

// ConstructionTotal returns Σ construction investment.
func (p Plan) ConstructionTotal() float64 {
	return p.Construction.Sum()
}

// InterestTotal returns Σ construction-period interest.
func (p Plan) InterestTotal() float64 {
	return p.ConstructionInterest.Sum()
}

// TotalInvestment returns construction investment, construction-period
// interest and working capital.
//
// FORMULA: totalInvestment = Σ construction + Σ constructionInterest + workingCapital
func (p Plan) TotalInvestment() float64 {
	return p.Construction.Sum() + p.ConstructionInterest.Sum() + p.WorkingCapital.Sum()
}

// ConstructionInterest computes simple interest on loan draws over n
// construction years. Each draw accrues half a year of interest in the year
// it is drawn.
//
// FORMULA: interest_y = (Σ draws before y + draw_y / 2) × annualRate
//
// Draws beyond n years are ignored and missing years draw nothing.
func ConstructionInterest(draws []float64, annualRate float64, n int) period.Series {
	out := period.NewSeries(n)
	drawn := 0.0
	for i := 0; i < n && i < len(draws); i++ {
		out[i] = (drawn + draws[i]/2) * annualRate
		drawn += draws[i]
	}
	return out
}

// AllocateEstimate spreads an investment estimate over n construction years.
//
// RULE:
//
//	building/installation is spread evenly
//	year 1 also carries other engineering fees and land
//	year n also carries equipment and reserves
//
// With a single construction year everything lands in year 1.
func AllocateEstimate(est models.InvestmentEstimate, n int) period.Series {
	out := period.NewSeries(n)
	if n == 0 {
		return out
	}
	building := est.BuildingInstallation.F() / float64(n)
	for i := range out {
		out[i] = building
	}
	out[0] += est.OtherEngineering.F() + est.Land.F()
	out[n-1] += est.Equipment.F() + est.Reserves.F()
	return out
}

// Build resolves the investment configuration against the period. Loan draws
// during construction drive the construction-period interest unless the
// configuration states it explicitly.
func Build(cfg models.InvestmentConfig, loan models.LoanTerms, p period.Period) Plan {
	total := p.TotalYears()
	plan := Plan{
		WorkingCapital:         period.NewSeries(total),
		WorkingCapitalRecovery: period.NewSeries(total),
		Maintenance:            period.NewSeries(total),
		Subsidy:                period.NewSeries(total),
	}

	// 1. Construction investment
	if len(cfg.ConstructionInvestment) > 0 {
		construction := period.NewSeries(p.ConstructionYears)
		for i := 0; i < p.ConstructionYears && i < len(cfg.ConstructionInvestment); i++ {
			construction[i] = cfg.ConstructionInvestment[i].F()
		}
		plan.Construction = p.ExpandConstruction(construction)
	} else {
		plan.Construction = p.ExpandConstruction(AllocateEstimate(cfg.Estimate, p.ConstructionYears))
	}

	// 2. Construction-period interest
	plan.ConstructionInterest = p.ExpandConstruction(buildInterest(cfg, loan, p.ConstructionYears))

	// 3. Working capital injected once, recovered in the final year
	if wc := cfg.WorkingCapital.Amount.F(); wc != 0 && total > 0 {
		year := cfg.WorkingCapital.Year.Int()
		if year <= 0 {
			year = p.FirstOperationYear()
		}
		if year > total {
			year = total
		}
		plan.WorkingCapital[year-1] = wc
		plan.WorkingCapitalRecovery[total-1] = wc
	}

	// 4. Recurring operation-year amounts
	for _, y := range period.YearRange(p.OperationYears) {
		abs := p.AbsoluteYear(y) - 1
		plan.Maintenance[abs] = cfg.MaintenanceInvestment.F()
		plan.Subsidy[abs] = cfg.SubsidyIncome.F()
	}
	return plan
}

// buildInterest resolves construction-period interest. An explicit amount is
// spread evenly across the construction years; with no construction years
// there is nothing to capitalize.
func buildInterest(cfg models.InvestmentConfig, loan models.LoanTerms, n int) period.Series {
	if n == 0 {
		return period.NewSeries(0)
	}
	if cfg.ConstructionInterest != nil {
		out := period.NewSeries(n)
		per := cfg.ConstructionInterest.F() / float64(n)
		for i := range out {
			out[i] = per
		}
		return out
	}
	draws := make([]float64, len(loan.ConstructionDraws))
	for i, d := range loan.ConstructionDraws {
		draws[i] = d.F()
	}
	return ConstructionInterest(draws, loan.AnnualRate.F(), n)
}
