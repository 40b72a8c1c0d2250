package projection

import (
	"fmt"

	"project_feasibility/pkg/core/cost"
	"project_feasibility/pkg/core/period"
)

// =============================================================================
// ROW HELPERS
// =============================================================================

// flowRow is a row whose total is the sum of its values.
func flowRow(id, label string, values period.Series) Row {
	total := values.Sum()
	return Row{ID: id, Label: label, Total: &total, Values: values}
}

// balanceRow is a row without a meaningful total (balances, ratios, cumulative).
func balanceRow(id, label string, values period.Series) Row {
	return Row{ID: id, Label: label, Values: values}
}

func (p *pass) newTable(key, title string, rows ...Row) *Table {
	return &Table{
		Key:               key,
		Title:             title,
		ConstructionYears: p.period.ConstructionYears,
		OperationYears:    p.period.OperationYears,
		Rows:              rows,
	}
}

// op expands an operation-year series onto the full horizon.
func (p *pass) op(s period.Series) period.Series {
	return p.period.Expand(s)
}

func (p *pass) buildTables() map[string]*Table {
	tables := []*Table{
		p.revenueTaxTable(),
		p.costCategoryTable(TableRawMaterials, "Raw Materials", cost.RawMaterials),
		p.costCategoryTable(TableFuelPower, "Fuel and Power", cost.FuelPower),
		p.totalCostTable(),
		p.depreciationTable(),
		p.loanTable(),
		p.profitTable(),
		p.cashFlowTable(),
		p.equityCashFlowTable(),
	}
	out := make(map[string]*Table, len(tables))
	for _, t := range tables {
		out[t.Key] = t
	}
	return out
}

// =============================================================================
// TABLES
// =============================================================================

func (p *pass) revenueTaxTable() *Table {
	rows := []Row{flowRow("1", "Operating revenue (VAT inclusive)", p.op(p.revenue.Series()))}
	for i, item := range p.revenue.Items() {
		label := item.Name
		if label == "" {
			label = item.ID
		}
		rows = append(rows, flowRow(fmt.Sprintf("1.%d", i+1), label, p.op(p.revenue.ItemSeries(i))))
	}
	rows = append(rows,
		flowRow("2", "VAT payable", p.op(p.tax.VAT)),
		flowRow("2.1", "Output VAT", p.op(p.tax.OutputVAT)),
		flowRow("2.2", "Input VAT", p.op(p.tax.InputVAT)),
		flowRow("2.3", "Fixed-asset input VAT credit", p.op(p.tax.FixedAssetCredit)),
		flowRow("3", "Taxes and surcharges", p.op(p.tax.Surcharges)),
		flowRow("3.1", "Urban maintenance and construction tax", p.op(p.tax.UrbanMaintenance)),
		flowRow("3.2", "Education surcharges", p.op(p.tax.EducationSurcharge)),
		flowRow("4", "Operating revenue (net of VAT)", p.op(p.revenue.NonTaxSeries())),
	)
	return p.newTable(TableRevenueTax, "Operating Revenue, Taxes and Surcharges", rows...)
}

func (p *pass) costCategoryTable(key, title string, cat cost.Category) *Table {
	rows := []Row{flowRow("1", title, p.op(p.costs.CategorySeries(cat)))}
	for i, line := range p.costs.Lines(cat) {
		rows = append(rows, flowRow(fmt.Sprintf("1.%d", i+1), line.Name, p.op(line.Amount)))
	}
	input := p.costs.CategoryInputVATSeries(cat)
	rows = append(rows,
		flowRow("2", "Input VAT", p.op(input)),
		flowRow("3", title+" (net of VAT)", p.op(p.costs.CategorySeries(cat).Sub(input))),
	)
	return p.newTable(key, title, rows...)
}

func (p *pass) totalCostTable() *Table {
	net := func(cat cost.Category) period.Series {
		return p.costs.CategorySeries(cat).Sub(p.costs.CategoryInputVATSeries(cat))
	}
	return p.newTable(TableTotalCost, "Total Cost",
		flowRow("1", "Operating cost", p.op(p.costs.OperatingCostSeries())),
		flowRow("1.1", "Raw materials (net of VAT)", p.op(net(cost.RawMaterials))),
		flowRow("1.2", "Fuel and power (net of VAT)", p.op(net(cost.FuelPower))),
		flowRow("1.3", "Wages and welfare", p.op(p.costs.CategorySeries(cost.Wages))),
		flowRow("1.4", "Repair", p.op(p.costs.CategorySeries(cost.Repair))),
		flowRow("1.5", "Other expenses", p.op(p.costs.CategorySeries(cost.OtherExpenses))),
		flowRow("2", "Interest expense", p.op(p.loan.Interest)),
		flowRow("3", "Depreciation", p.op(p.dep.Depreciation())),
		flowRow("4", "Amortization", p.op(p.dep.Amortization())),
		flowRow("5", "Total cost", p.op(p.profit.TotalCost)),
		flowRow("6", "Deductible input VAT", p.op(p.costs.DeductibleInputVATSeries())),
	)
}

func (p *pass) depreciationTable() *Table {
	labels := map[string]string{
		"A": "Buildings and structures",
		"D": "Machinery and equipment",
		"E": "Intangible and other assets",
	}
	var rows []Row
	for _, line := range p.dep.Lines() {
		rows = append(rows,
			flowRow(line.Key, labels[line.Key]+" charge", p.op(line.Charge)),
			balanceRow(line.Key+".1", labels[line.Key]+" net value", p.op(line.NetValue)),
		)
	}
	rows = append(rows, flowRow("F", "Total depreciation and amortization", p.op(p.dep.Depreciation().Add(p.dep.Amortization()))))
	return p.newTable(TableDepreciation, "Depreciation and Amortization", rows...)
}

func (p *pass) loanTable() *Table {
	return p.newTable(TableLoanRepayment, "Loan Repayment",
		balanceRow("1.1", "Opening balance", p.op(p.loan.Opening)),
		flowRow("1.2", "Debt service", p.op(p.loan.DebtService())),
		flowRow("1.2.1", "Principal", p.op(p.loan.Principal)),
		flowRow("1.2.2", "Interest", p.op(p.loan.Interest)),
		balanceRow("1.3", "Closing balance", p.op(p.loan.Closing)),
		flowRow("1.4", "Construction-period interest", p.plan.ConstructionInterest),
		flowRow("2.1", "EBIT", p.op(p.profit.EBIT)),
		flowRow("2.2", "EBITDA", p.op(p.profit.EBITDA)),
		flowRow("2.3", "Income tax", p.op(p.profit.IncomeTax)),
		balanceRow("3.1", "Interest coverage ratio", p.op(p.icr)),
		balanceRow("3.2", "Debt service coverage ratio", p.op(p.dscr)),
	)
}

func (p *pass) profitTable() *Table {
	st := p.profit
	return p.newTable(TableProfit, "Profit and Profit Distribution",
		flowRow("1", "Operating revenue (net of VAT)", p.op(st.Revenue)),
		flowRow("2", "Taxes and surcharges", p.op(st.Surcharges)),
		flowRow("3", "Total cost", p.op(st.TotalCost)),
		flowRow("4", "Subsidy income", p.op(st.Subsidy)),
		flowRow("5", "Total profit", p.op(st.TotalProfit)),
		balanceRow("6", "Loss carried forward", p.op(st.LossCarryForward)),
		flowRow("7", "Taxable income", p.op(st.TaxableIncome)),
		flowRow("8", "Income tax", p.op(st.IncomeTax)),
		flowRow("9", "Net profit", p.op(st.NetProfit)),
		balanceRow("10", "Undistributed profit at beginning", p.op(st.OpeningUndistributed)),
		flowRow("11", "Distributable profit", p.op(st.Distributable)),
		flowRow("12", "Statutory surplus reserve", p.op(st.StatutorySurplus)),
		flowRow("13", "Profit distributable to investors", p.op(st.InvestorDistributable)),
		balanceRow("14", "Undistributed profit", p.op(st.Undistributed)),
		flowRow("15", "EBIT", p.op(st.EBIT)),
		flowRow("16", "EBITDA", p.op(st.EBITDA)),
	)
}

func (p *pass) cashFlowTable() *Table {
	cf := p.cash
	return p.newTable(TableCashFlow, "Project Investment Cash Flow",
		flowRow("1", "Cash inflow", cf.Inflow),
		flowRow("1.1", "Operating revenue", cf.Revenue),
		flowRow("1.2", "Subsidy income", cf.Subsidy),
		flowRow("1.3", "Residual value of fixed assets recovered", cf.ResidualRecovery),
		flowRow("1.4", "Working capital recovered", cf.WorkingCapitalRecovery),
		flowRow("2", "Cash outflow", cf.Outflow),
		flowRow("2.1", "Construction investment", cf.ConstructionInvestment),
		flowRow("2.2", "Working capital", cf.WorkingCapital),
		flowRow("2.3", "Operating cost", cf.OperatingCost),
		flowRow("2.4", "VAT, taxes and surcharges", cf.VATAndSurcharges),
		flowRow("2.5", "Maintenance investment", cf.Maintenance),
		flowRow("3", "Net cash flow before income tax", cf.PreTaxNet),
		balanceRow("4", "Cumulative net cash flow before income tax", cf.PreTaxCumulative),
		flowRow("5", "Adjusted income tax", cf.AdjustedIncomeTax),
		flowRow("6", "Net cash flow after income tax", cf.PostTaxNet),
		balanceRow("7", "Cumulative net cash flow after income tax", cf.PostTaxCumulative),
		flowRow("8", "Discounted net cash flow before income tax", cf.PreTaxDiscounted),
		balanceRow("9", "Cumulative discounted net cash flow before income tax", cf.PreTaxDiscountedCum),
		flowRow("10", "Discounted net cash flow after income tax", cf.PostTaxDiscounted),
		balanceRow("11", "Cumulative discounted net cash flow after income tax", cf.PostTaxDiscountedCum),
	)
}

func (p *pass) equityCashFlowTable() *Table {
	eq := p.equity
	return p.newTable(TableEquityCashFlow, "Project Capital Cash Flow",
		flowRow("1", "Cash inflow", eq.Inflow),
		flowRow("2", "Cash outflow", eq.Outflow),
		flowRow("2.1", "Project capital", eq.EquityInvestment),
		flowRow("2.2", "Loan principal repaid", eq.Principal),
		flowRow("2.3", "Loan interest paid", eq.Interest),
		flowRow("2.4", "Operating cost", eq.OperatingCost),
		flowRow("2.5", "VAT, taxes and surcharges", eq.VATAndSurcharges),
		flowRow("2.6", "Maintenance investment", eq.Maintenance),
		flowRow("2.7", "Income tax", eq.IncomeTax),
		flowRow("3", "Net cash flow", eq.Net),
		balanceRow("4", "Cumulative net cash flow", eq.Cumulative),
		flowRow("5", "Discounted net cash flow", eq.Discounted),
	)
}
