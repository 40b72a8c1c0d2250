// Package profit builds the profit and profit-distribution statement for the
// operation years, including loss carry-forward and EBIT/EBITDA.
package profit

import (
	"math"

	"project_feasibility/pkg/core/period"
)

// Inputs are the per-operation-year series the statement is derived from.
type Inputs struct {
	Revenue       period.Series // net of VAT
	Surcharges    period.Series
	OperatingCost period.Series
	Interest      period.Series
	Depreciation  period.Series
	Amortization  period.Series
	Subsidy       period.Series

	IncomeTaxRate        float64
	StatutorySurplusRate float64
}

// Statement is the profit and distribution result per operation year.
type Statement struct {
	Revenue               period.Series
	Surcharges            period.Series
	TotalCost             period.Series
	Subsidy               period.Series
	TotalProfit           period.Series
	LossCarryForward      period.Series // carried loss available at the start of the year
	TaxableIncome         period.Series
	IncomeTax             period.Series
	NetProfit             period.Series
	OpeningUndistributed  period.Series
	Distributable         period.Series
	StatutorySurplus      period.Series
	InvestorDistributable period.Series
	Undistributed         period.Series
	EBIT                  period.Series
	EBITDA                period.Series
}

// Compute builds the statement. Loss carry-forward and undistributed profit
// roll forward in year order.
//
// FORMULA (per year):
//
//	totalCost     = operatingCost + interest + depreciation + amortization
//	totalProfit   = revenue - surcharges - totalCost + subsidy
//	taxable       = max(0, totalProfit - carriedLoss)
//	incomeTax     = taxable × incomeTaxRate
//	netProfit     = totalProfit - incomeTax
//	distributable = netProfit + openingUndistributed
//	surplus       = netProfit × statutorySurplusRate (0 on a loss)
//	EBIT          = totalProfit + interest
//	EBITDA        = EBIT + depreciation + amortization
func Compute(in Inputs) Statement {
	n := len(in.Revenue)
	st := Statement{
		Revenue:               in.Revenue.Clone(),
		Surcharges:            fit(in.Surcharges, n),
		TotalCost:             period.Sum(n, in.OperatingCost, in.Interest, in.Depreciation, in.Amortization),
		Subsidy:               fit(in.Subsidy, n),
		TotalProfit:           period.NewSeries(n),
		LossCarryForward:      period.NewSeries(n),
		TaxableIncome:         period.NewSeries(n),
		IncomeTax:             period.NewSeries(n),
		NetProfit:             period.NewSeries(n),
		OpeningUndistributed:  period.NewSeries(n),
		Distributable:         period.NewSeries(n),
		StatutorySurplus:      period.NewSeries(n),
		InvestorDistributable: period.NewSeries(n),
		Undistributed:         period.NewSeries(n),
		EBIT:                  period.NewSeries(n),
		EBITDA:                period.NewSeries(n),
	}

	var carriedLoss, undistributed float64
	for i := 0; i < n; i++ {
		// 1. Profit before tax
		profit := st.Revenue[i] - st.Surcharges[i] - st.TotalCost[i] + st.Subsidy[i]
		st.TotalProfit[i] = profit

		// 2. Loss carry-forward
		st.LossCarryForward[i] = carriedLoss
		taxable := math.Max(0, profit-carriedLoss)
		if profit < 0 {
			carriedLoss += -profit
		} else {
			carriedLoss = math.Max(0, carriedLoss-profit)
		}

		// 3. Income tax and net profit
		st.TaxableIncome[i] = taxable
		st.IncomeTax[i] = taxable * in.IncomeTaxRate
		net := profit - st.IncomeTax[i]
		st.NetProfit[i] = net

		// 4. Distribution
		st.OpeningUndistributed[i] = undistributed
		st.Distributable[i] = net + undistributed
		if net > 0 {
			st.StatutorySurplus[i] = net * in.StatutorySurplusRate
		}
		st.InvestorDistributable[i] = st.Distributable[i] - st.StatutorySurplus[i]
		st.Undistributed[i] = st.InvestorDistributable[i]
		undistributed = st.Undistributed[i]

		// 5. EBIT / EBITDA
		st.EBIT[i] = profit + in.Interest.At(i+1)
		st.EBITDA[i] = st.EBIT[i] + in.Depreciation.At(i+1) + in.Amortization.At(i+1)
	}
	return st
}

func fit(s period.Series, n int) period.Series {
	out := period.NewSeries(n)
	copy(out, s)
	return out
}
