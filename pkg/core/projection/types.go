package projection

import (
	"project_feasibility/pkg/core/indicator"
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/core/validate"
)

// Table keys.
const (
	TableRevenueTax     = "revenue_tax"
	TableRawMaterials   = "raw_materials"
	TableFuelPower      = "fuel_power"
	TableTotalCost      = "total_cost"
	TableDepreciation   = "depreciation"
	TableLoanRepayment  = "loan_repayment"
	TableProfit         = "profit"
	TableCashFlow       = "cash_flow"
	TableEquityCashFlow = "equity_cash_flow"
)

// TableOrder lists the tables in presentation order.
var TableOrder = []string{
	TableRevenueTax,
	TableRawMaterials,
	TableFuelPower,
	TableTotalCost,
	TableDepreciation,
	TableLoanRepayment,
	TableProfit,
	TableCashFlow,
	TableEquityCashFlow,
}

// Row is one line of a table. Values span the full horizon, construction
// years first. Total is nil for balances and ratios.
type Row struct {
	ID     string        `json:"id"`
	Label  string        `json:"label"`
	Total  *float64      `json:"total"`
	Values period.Series `json:"values"`
}

// Table is an ordered set of rows keyed by hierarchical ids ("1", "1.1").
type Table struct {
	Key               string `json:"key"`
	Title             string `json:"title"`
	ConstructionYears int    `json:"constructionYears"`
	OperationYears    int    `json:"operationYears"`
	Rows              []Row  `json:"rows"`
}

// Row returns the row with the given id.
func (t *Table) Row(id string) (*Row, bool) {
	for i := range t.Rows {
		if t.Rows[i].ID == id {
			return &t.Rows[i], true
		}
	}
	return nil, false
}

// Series returns a row's values, or nil when the row does not exist.
func (t *Table) Series(id string) period.Series {
	if r, ok := t.Row(id); ok {
		return r.Values
	}
	return nil
}

// Result is the output of one projection pass.
type Result struct {
	ProjectID  string                        `json:"projectId"`
	Period     period.Period                 `json:"period"`
	Tables     map[string]*Table             `json:"tables"`
	Indicators indicator.FinancialIndicators `json:"indicators"`
	Report     *validate.Report              `json:"report"`
	Linkage    *validate.LinkageReport       `json:"linkage"`
}

// Table returns a table by key.
func (r *Result) Table(key string) *Table {
	return r.Tables[key]
}

// Series returns the values of table/row, or nil.
func (r *Result) Series(table, rowID string) period.Series {
	t := r.Tables[table]
	if t == nil {
		return nil
	}
	return t.Series(rowID)
}

// OrderedTables returns the tables in presentation order.
func (r *Result) OrderedTables() []*Table {
	out := make([]*Table, 0, len(r.Tables))
	for _, key := range TableOrder {
		if t, ok := r.Tables[key]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Defaults are the rates used when a configuration leaves them unset.
type Defaults struct {
	DiscountRate           float64
	UrbanMaintenanceRate   float64
	EducationSurchargeRate float64
	IncomeTaxRate          float64
	StatutorySurplusRate   float64
}
