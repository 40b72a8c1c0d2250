package cashflow

import (
	"math"

	"project_feasibility/pkg/core/calc"
	"project_feasibility/pkg/core/period"
)

// EquityInputs are full-horizon series for the project-capital cash flow.
type EquityInputs struct {
	Revenue                period.Series
	Subsidy                period.Series
	WorkingCapitalRecovery period.Series
	ResidualValue          float64

	EquityInvestment period.Series
	Principal        period.Series
	Interest         period.Series
	OperatingCost    period.Series
	VATAndSurcharges period.Series
	Maintenance      period.Series
	IncomeTax        period.Series

	DiscountRate float64
}

// EquityStatement is the cash flow seen by the project's capital providers.
type EquityStatement struct {
	Inflow           period.Series
	EquityInvestment period.Series
	Principal        period.Series
	Interest         period.Series
	OperatingCost    period.Series
	VATAndSurcharges period.Series
	Maintenance      period.Series
	IncomeTax        period.Series
	Outflow          period.Series
	Net              period.Series
	Cumulative       period.Series
	Discounted       period.Series
}

// EquityShare is the fraction of investment funded by project capital.
//
// FORMULA: clamp((totalInvestment - loanPrincipal) / totalInvestment, 0, 1)
func EquityShare(totalInvestment, loanPrincipal float64) float64 {
	if totalInvestment <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, (totalInvestment-loanPrincipal)/totalInvestment))
}

// ComputeEquity builds the project-capital cash flow.
func ComputeEquity(in EquityInputs) EquityStatement {
	n := len(in.Revenue)
	residual := period.NewSeries(n)
	if n > 0 {
		residual[n-1] = in.ResidualValue
	}

	st := EquityStatement{
		Inflow:           period.Sum(n, in.Revenue, in.Subsidy, residual, in.WorkingCapitalRecovery),
		EquityInvestment: fit(in.EquityInvestment, n),
		Principal:        fit(in.Principal, n),
		Interest:         fit(in.Interest, n),
		OperatingCost:    fit(in.OperatingCost, n),
		VATAndSurcharges: fit(in.VATAndSurcharges, n),
		Maintenance:      fit(in.Maintenance, n),
		IncomeTax:        fit(in.IncomeTax, n),
	}
	st.Outflow = period.Sum(n, st.EquityInvestment, st.Principal, st.Interest,
		st.OperatingCost, st.VATAndSurcharges, st.Maintenance, st.IncomeTax)
	st.Net = st.Inflow.Sub(st.Outflow)
	st.Cumulative = st.Net.Cumulative()
	st.Discounted = calc.Discount(st.Net, in.DiscountRate)
	return st
}
