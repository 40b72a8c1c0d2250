// Package cashflow builds the project investment cash flow over the full
// horizon (construction + operation), before and after income tax, plain and
// discounted, plus the project-capital (equity) cash flow.
package cashflow

import (
	"math"

	"project_feasibility/pkg/core/calc"
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"
)

// Inputs are full-horizon series indexed by absolute year.
type Inputs struct {
	Revenue                period.Series // tax-inclusive
	Subsidy                period.Series
	WorkingCapitalRecovery period.Series
	ResidualValue          float64 // recovered in the final year

	ConstructionInvestment period.Series
	WorkingCapital         period.Series
	OperatingCost          period.Series
	VATAndSurcharges       period.Series
	Maintenance            period.Series

	EBIT          period.Series
	IncomeTaxRate float64
	DiscountRate  float64
}

// Statement is the project investment cash flow.
type Statement struct {
	Inflow                 period.Series
	Revenue                period.Series
	Subsidy                period.Series
	ResidualRecovery       period.Series
	WorkingCapitalRecovery period.Series

	Outflow                period.Series
	ConstructionInvestment period.Series
	WorkingCapital         period.Series
	OperatingCost          period.Series
	VATAndSurcharges       period.Series
	Maintenance            period.Series

	PreTaxNet            period.Series
	PreTaxCumulative     period.Series
	AdjustedIncomeTax    period.Series
	PostTaxNet           period.Series
	PostTaxCumulative    period.Series
	PreTaxDiscounted     period.Series
	PreTaxDiscountedCum  period.Series
	PostTaxDiscounted    period.Series
	PostTaxDiscountedCum period.Series
}

// ResidualValue returns the fixed-asset value recovered at the end of the
// horizon.
//
// FORMULA: construction.ov × rr_c/100 + equipment.ov × rr_e/100
func ResidualValue(assets models.AssetsConfig) float64 {
	c := assets.Construction
	e := assets.Equipment
	return c.OriginalValue.F()*c.ResidualRatePercent.F()/100 +
		e.OriginalValue.F()*e.ResidualRatePercent.F()/100
}

// AdjustedIncomeTax is the income tax on EBIT used by the project cash flow.
//
// FORMULA: max(0, EBIT) × incomeTaxRate
func AdjustedIncomeTax(ebit, incomeTaxRate float64) float64 {
	return math.Max(0, ebit) * incomeTaxRate
}

// Compute builds the statement for n = len(in.Revenue) years. Cumulative
// rows run in year order.
func Compute(in Inputs) Statement {
	n := len(in.Revenue)
	st := Statement{
		Revenue:                in.Revenue.Clone(),
		Subsidy:                fit(in.Subsidy, n),
		ResidualRecovery:       period.NewSeries(n),
		WorkingCapitalRecovery: fit(in.WorkingCapitalRecovery, n),
		ConstructionInvestment: fit(in.ConstructionInvestment, n),
		WorkingCapital:         fit(in.WorkingCapital, n),
		OperatingCost:          fit(in.OperatingCost, n),
		VATAndSurcharges:       fit(in.VATAndSurcharges, n),
		Maintenance:            fit(in.Maintenance, n),
		AdjustedIncomeTax:      period.NewSeries(n),
	}
	if n > 0 {
		st.ResidualRecovery[n-1] = in.ResidualValue
	}

	// 1. Inflow / outflow
	st.Inflow = period.Sum(n, st.Revenue, st.Subsidy, st.ResidualRecovery, st.WorkingCapitalRecovery)
	st.Outflow = period.Sum(n, st.ConstructionInvestment, st.WorkingCapital, st.OperatingCost, st.VATAndSurcharges, st.Maintenance)

	// 2. Pre-tax
	st.PreTaxNet = st.Inflow.Sub(st.Outflow)
	st.PreTaxCumulative = st.PreTaxNet.Cumulative()

	// 3. Adjusted income tax and post-tax
	for i := 0; i < n; i++ {
		st.AdjustedIncomeTax[i] = AdjustedIncomeTax(in.EBIT.At(i+1), in.IncomeTaxRate)
	}
	st.PostTaxNet = st.PreTaxNet.Sub(st.AdjustedIncomeTax)
	st.PostTaxCumulative = st.PostTaxNet.Cumulative()

	// 4. Discounted rows
	st.PreTaxDiscounted = calc.Discount(st.PreTaxNet, in.DiscountRate)
	st.PreTaxDiscountedCum = st.PreTaxDiscounted.Cumulative()
	st.PostTaxDiscounted = calc.Discount(st.PostTaxNet, in.DiscountRate)
	st.PostTaxDiscountedCum = st.PostTaxDiscounted.Cumulative()
	return st
}

func fit(s period.Series, n int) period.Series {
	out := period.NewSeries(n)
	copy(out, s)
	return out
}
