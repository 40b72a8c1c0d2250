// Package indicator aggregates the computed tables into the flat set of
// feasibility indicators: return ratios, coverage, IRR, NPV and payback.
package indicator

import (
	"errors"

	"project_feasibility/pkg/core/calc"
	"project_feasibility/pkg/core/cashflow"
	"project_feasibility/pkg/core/loan"
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/core/validate"
)

// FinancialIndicators is the flat indicator record. Ratios are decimals.
// IRR fields are nil when no rate could be found.
type FinancialIndicators struct {
	TotalInvestment        float64 `json:"totalInvestment"`
	ConstructionInvestment float64 `json:"constructionInvestment"`
	ConstructionInterest   float64 `json:"constructionInterest"`
	WorkingCapital         float64 `json:"workingCapital"`
	Equity                 float64 `json:"equity"`
	LoanPrincipal          float64 `json:"loanPrincipal"`

	TotalRevenue       float64 `json:"totalRevenue"`
	TotalOperatingCost float64 `json:"totalOperatingCost"`
	TotalProfit        float64 `json:"totalProfit"`
	TotalNetProfit     float64 `json:"totalNetProfit"`
	AverageEBIT        float64 `json:"averageEbit"`
	AverageNetProfit   float64 `json:"averageNetProfit"`

	ROI               float64 `json:"roi"`
	ROE               float64 `json:"roe"`
	InvestmentTaxRate float64 `json:"investmentTaxRate"`

	AverageICR  float64 `json:"averageIcr"`
	AverageDSCR float64 `json:"averageDscr"`
	MinDSCR     float64 `json:"minDscr"`

	DiscountRate float64  `json:"discountRate"`
	IRRPreTax    *float64 `json:"irrPreTax"`
	IRRPostTax   *float64 `json:"irrPostTax"`
	IRREquity    *float64 `json:"irrEquity"`
	NPVPreTax    float64  `json:"npvPreTax"`
	NPVPostTax   float64  `json:"npvPostTax"`

	PaybackPreTax         calc.Payback `json:"paybackPreTax"`
	PaybackPostTax        calc.Payback `json:"paybackPostTax"`
	DynamicPaybackPreTax  calc.Payback `json:"dynamicPaybackPreTax"`
	DynamicPaybackPostTax calc.Payback `json:"dynamicPaybackPostTax"`
}

// Inputs are the series indicators are derived from. Operation-year series
// for the statement rows, full-horizon statements for cash flow.
type Inputs struct {
	ConstructionInvestment float64
	ConstructionInterest   float64
	WorkingCapital         float64
	Equity                 float64
	LoanPrincipal          float64

	Revenue       period.Series
	OperatingCost period.Series
	TotalProfit   period.Series
	NetProfit     period.Series
	EBIT          period.Series
	VAT           period.Series
	Surcharges    period.Series
	ICR           period.Series
	DSCR          period.Series

	CashFlow     cashflow.Statement
	EquityFlow   cashflow.EquityStatement
	DiscountRate float64
}

// Aggregate computes the indicators. IRR failures are recorded in the report
// as NOT_CONVERGED and leave the other indicators intact.
//
// FORMULA:
//
//	totalInvestment   = constructionInvestment + constructionInterest + workingCapital
//	ROI               = avg EBIT / totalInvestment
//	ROE               = avg netProfit / equity
//	investmentTaxRate = (avg EBIT + avg surcharges + avg VAT) / totalInvestment
func Aggregate(in Inputs, report *validate.Report) FinancialIndicators {
	total := in.ConstructionInvestment + in.ConstructionInterest + in.WorkingCapital
	fi := FinancialIndicators{
		TotalInvestment:        total,
		ConstructionInvestment: in.ConstructionInvestment,
		ConstructionInterest:   in.ConstructionInterest,
		WorkingCapital:         in.WorkingCapital,
		Equity:                 in.Equity,
		LoanPrincipal:          in.LoanPrincipal,
		TotalRevenue:           in.Revenue.Sum(),
		TotalOperatingCost:     in.OperatingCost.Sum(),
		TotalProfit:            in.TotalProfit.Sum(),
		TotalNetProfit:         in.NetProfit.Sum(),
		AverageEBIT:            in.EBIT.Average(),
		AverageNetProfit:       in.NetProfit.Average(),
		DiscountRate:           in.DiscountRate,
	}

	// 1. Return ratios
	if total > 0 {
		fi.ROI = fi.AverageEBIT / total
		fi.InvestmentTaxRate = (fi.AverageEBIT + in.Surcharges.Average() + in.VAT.Average()) / total
	}
	if in.Equity > 0 {
		fi.ROE = fi.AverageNetProfit / in.Equity
	}

	// 2. Coverage
	fi.AverageICR = loan.AverageNonZero(in.ICR)
	fi.AverageDSCR = loan.AverageNonZero(in.DSCR)
	fi.MinDSCR = minNonZero(in.DSCR)

	// 3. IRR
	fi.IRRPreTax = irr(in.CashFlow.PreTaxNet, "irrPreTax", report)
	fi.IRRPostTax = irr(in.CashFlow.PostTaxNet, "irrPostTax", report)
	if len(in.EquityFlow.Net) > 0 {
		fi.IRREquity = irr(in.EquityFlow.Net, "irrEquity", report)
	}

	// 4. NPV
	fi.NPVPreTax = calc.NPV(in.CashFlow.PreTaxNet, in.DiscountRate)
	fi.NPVPostTax = calc.NPV(in.CashFlow.PostTaxNet, in.DiscountRate)

	// 5. Payback
	fi.PaybackPreTax = calc.PaybackPeriod(in.CashFlow.PreTaxNet)
	fi.PaybackPostTax = calc.PaybackPeriod(in.CashFlow.PostTaxNet)
	fi.DynamicPaybackPreTax = calc.PaybackPeriod(in.CashFlow.PreTaxDiscounted)
	fi.DynamicPaybackPostTax = calc.PaybackPeriod(in.CashFlow.PostTaxDiscounted)

	return fi
}

func irr(flows period.Series, field string, report *validate.Report) *float64 {
	r, err := calc.IRR(flows)
	if err != nil {
		if report != nil && errors.Is(err, calc.ErrNotConverged) {
			report.Errorf(validate.CodeNotConverged, field, "no internal rate of return found for the cash flow")
		}
		return nil
	}
	return &r
}

func minNonZero(s period.Series) float64 {
	var min float64
	found := false
	for _, v := range s {
		if v == 0 {
			continue
		}
		if !found || v < min {
			min = v
			found = true
		}
	}
	return min
}
