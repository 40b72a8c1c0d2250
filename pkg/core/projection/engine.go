// Package projection runs one feasibility projection pass: it walks the
// dependency chain revenue → cost → tax → depreciation/loan → profit →
// cash flow → indicators once and lays the results out as keyed tables.
package projection

import (
	"math"

	"project_feasibility/pkg/core/cashflow"
	"project_feasibility/pkg/core/cost"
	"project_feasibility/pkg/core/depreciation"
	"project_feasibility/pkg/core/indicator"
	"project_feasibility/pkg/core/investment"
	"project_feasibility/pkg/core/loan"
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/core/profit"
	"project_feasibility/pkg/core/revenue"
	"project_feasibility/pkg/core/tax"
	"project_feasibility/pkg/core/validate"
	"project_feasibility/pkg/models"
)

// ProjectionEngine computes projections. It holds no per-pass state and is
// safe for concurrent use.
type ProjectionEngine struct {
	Defaults Defaults
}

// NewProjectionEngine creates an engine with the given default rates.
func NewProjectionEngine(defaults Defaults) *ProjectionEngine {
	return &ProjectionEngine{Defaults: defaults}
}

// DefaultRates returns the statutory defaults.
func DefaultRates() Defaults {
	return Defaults{
		DiscountRate:           models.DefaultDiscountRate,
		UrbanMaintenanceRate:   models.DefaultUrbanMaintenanceRate,
		EducationSurchargeRate: models.DefaultEducationSurchargeRate,
		IncomeTaxRate:          models.DefaultIncomeTaxRate,
		StatutorySurplusRate:   models.DefaultStatutorySurplusRate,
	}
}

// pass carries the intermediate results of one Run. Every series is
// computed once and read by the later stages and the table builders.
type pass struct {
	cfg    models.ProjectConfig
	period period.Period
	curve  period.Curve

	discountRate  float64
	incomeTaxRate float64

	revenue *revenue.Engine
	costs   *cost.Engine
	tax     tax.Schedule
	dep     depreciation.Result
	loan    loan.Schedule
	plan    investment.Plan
	profit  profit.Statement
	icr     period.Series
	dscr    period.Series
	cash    cashflow.Statement
	equity  cashflow.EquityStatement

	equityAmount float64
	residual     float64
}

// Run computes every table and indicator for one configuration. Data
// problems never abort the pass; they are collected in Result.Report.
func (e *ProjectionEngine) Run(cfg models.ProjectConfig) *Result {
	report := validate.Config(cfg)

	p := &pass{
		cfg:           cfg,
		period:        period.FromConfig(cfg.Period),
		discountRate:  models.Value(cfg.DiscountRate, e.Defaults.DiscountRate),
		incomeTaxRate: models.Value(cfg.Tax.IncomeTaxRate, e.Defaults.IncomeTaxRate),
	}
	ops := p.period.OperationYears
	p.curve = period.CurveFromConfig(cfg.ProductionRates, ops)

	// 1. Revenue
	p.revenue = revenue.NewEngine(cfg.Revenue.Items, p.curve, ops)

	// 2. Costs
	fixedAssets := cfg.Assets.Construction.OriginalValue.F() + cfg.Assets.Equipment.OriginalValue.F()
	p.costs = cost.NewEngine(cfg.Costs, p.revenue, p.curve, ops, fixedAssets)

	// 3. VAT and surcharges
	p.tax = tax.Compute(p.revenue.OutputVATSeries(), p.costs.DeductibleInputVATSeries(), cfg.Tax.DeductibleInputTax.F(), tax.Rates{
		UrbanMaintenance:   models.Value(cfg.Tax.UrbanMaintenanceRate, e.Defaults.UrbanMaintenanceRate),
		EducationSurcharge: models.Value(cfg.Tax.EducationSurchargeRate, e.Defaults.EducationSurchargeRate),
	})

	// 4. Depreciation and loan
	p.dep = depreciation.Compute(cfg.Assets, ops)
	p.loan = loan.Compute(cfg.Loan, ops)

	// 5. Investment schedule
	p.plan = investment.Build(cfg.Investment, cfg.Loan, p.period)

	// 6. Profit statement and coverage
	p.profit = profit.Compute(profit.Inputs{
		Revenue:              p.revenue.NonTaxSeries(),
		Surcharges:           p.tax.Surcharges,
		OperatingCost:        p.costs.OperatingCostSeries(),
		Interest:             p.loan.Interest,
		Depreciation:         p.dep.Depreciation(),
		Amortization:         p.dep.Amortization(),
		Subsidy:              p.period.OperationSlice(p.plan.Subsidy),
		IncomeTaxRate:        p.incomeTaxRate,
		StatutorySurplusRate: models.Value(cfg.Tax.StatutorySurplusRate, e.Defaults.StatutorySurplusRate),
	})
	p.icr, p.dscr = loan.Coverage(p.profit.EBIT, p.profit.EBITDA, p.profit.IncomeTax, p.loan)

	// 7. Cash flows
	p.residual = cashflow.ResidualValue(cfg.Assets)
	p.cash = cashflow.Compute(cashflow.Inputs{
		Revenue:                p.period.Expand(p.revenue.Series()),
		Subsidy:                p.plan.Subsidy,
		WorkingCapitalRecovery: p.plan.WorkingCapitalRecovery,
		ResidualValue:          p.residual,
		ConstructionInvestment: p.plan.Construction,
		WorkingCapital:         p.plan.WorkingCapital,
		OperatingCost:          p.period.Expand(p.costs.OperatingCostSeries()),
		VATAndSurcharges:       p.period.Expand(p.tax.VATAndSurcharges()),
		Maintenance:            p.plan.Maintenance,
		EBIT:                   p.period.Expand(p.profit.EBIT),
		IncomeTaxRate:          p.incomeTaxRate,
		DiscountRate:           p.discountRate,
	})
	p.buildEquityFlow()

	// 8. Indicators
	fi := indicator.Aggregate(indicator.Inputs{
		ConstructionInvestment: p.plan.ConstructionTotal(),
		ConstructionInterest:   p.plan.InterestTotal(),
		WorkingCapital:         p.plan.WorkingCapital.Sum(),
		Equity:                 p.equityAmount,
		LoanPrincipal:          cfg.Loan.Principal.F(),
		Revenue:                p.revenue.Series(),
		OperatingCost:          p.costs.OperatingCostSeries(),
		TotalProfit:            p.profit.TotalProfit,
		NetProfit:              p.profit.NetProfit,
		EBIT:                   p.profit.EBIT,
		VAT:                    p.tax.VAT,
		Surcharges:             p.tax.Surcharges,
		ICR:                    p.icr,
		DSCR:                   p.dscr,
		CashFlow:               p.cash,
		EquityFlow:             p.equity,
		DiscountRate:           p.discountRate,
	}, report)

	// 9. Tables and cross-table checks
	result := &Result{
		ProjectID:  cfg.ProjectID,
		Period:     p.period,
		Tables:     p.buildTables(),
		Indicators: fi,
		Report:     report,
	}
	result.Linkage = p.linkage(result)
	result.Linkage.Into(report)
	return result
}

// buildEquityFlow derives the project-capital cash flow. Equity funds the
// share of total investment, capitalized interest included, not covered by
// the loan.
func (p *pass) buildEquityFlow() {
	total := p.plan.TotalInvestment()
	principal := p.cfg.Loan.Principal.F()
	if p.cfg.Investment.Equity != nil {
		p.equityAmount = p.cfg.Investment.Equity.F()
	} else {
		p.equityAmount = math.Max(0, total-principal)
	}

	share := 0.0
	if total > 0 {
		share = math.Min(1, math.Max(0, p.equityAmount/total))
	}
	n := p.period.TotalYears()
	equityInvestment := period.NewSeries(n)
	for i := 0; i < n; i++ {
		equityInvestment[i] = (p.plan.Construction[i] + p.plan.ConstructionInterest[i] + p.plan.WorkingCapital[i]) * share
	}

	p.equity = cashflow.ComputeEquity(cashflow.EquityInputs{
		Revenue:                p.cash.Revenue,
		Subsidy:                p.cash.Subsidy,
		WorkingCapitalRecovery: p.cash.WorkingCapitalRecovery,
		ResidualValue:          p.residual,
		EquityInvestment:       equityInvestment,
		Principal:              p.period.Expand(p.loan.Principal),
		Interest:               p.period.Expand(p.loan.Interest),
		OperatingCost:          p.cash.OperatingCost,
		VATAndSurcharges:       p.cash.VATAndSurcharges,
		Maintenance:            p.cash.Maintenance,
		IncomeTax:              p.period.Expand(p.profit.IncomeTax),
		DiscountRate:           p.discountRate,
	})
}

// linkage cross-checks quantities that two tables derive independently.
func (p *pass) linkage(r *Result) *validate.LinkageReport {
	tol := validate.DefaultTolerance
	checks := []validate.Linkage{
		validate.SeriesLinkage("revenue_to_cash_flow", r.Series(TableRevenueTax, "1"), r.Series(TableCashFlow, "1.1"), tol),
		validate.SeriesLinkage("operating_cost_to_cash_flow", r.Series(TableTotalCost, "1"), r.Series(TableCashFlow, "2.3"), tol),
		validate.SeriesLinkage("interest_to_total_cost", r.Series(TableLoanRepayment, "1.2.2"), r.Series(TableTotalCost, "2"), tol),
		validate.SeriesLinkage("ebit_to_loan_table", r.Series(TableProfit, "15"), r.Series(TableLoanRepayment, "2.1"), tol),
		validate.ValueLinkage("cumulative_pre_tax", p.cash.PreTaxNet.Sum(), lastOf(p.cash.PreTaxCumulative), 1e-6),
	}

	// The full loan is repaid only when the term fits in the horizon.
	if p.cfg.Loan.Principal.F() > 0 && !p.loan.Invalid && p.cfg.Loan.TermYears.F() <= float64(p.period.OperationYears) {
		checks = append(checks, validate.ValueLinkage("loan_principal_repaid", p.cfg.Loan.Principal.F(), p.loan.Principal.Sum(), 1e-6))
	}
	return validate.NewLinkageReport(checks...)
}

func lastOf(s period.Series) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}
