package revenue

import (
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"
)

// Engine evaluates all revenue items over the operation horizon. Series are
// computed once at construction and read many times.
type Engine struct {
	items []models.RevenueItem
	index map[string]int
	years int

	taxable [][]float64 // [item][year-1], ramped
	base    [][]float64 // [item][year-1], escalated, not ramped
}

// NewEngine evaluates every item for operation years 1..operationYears.
func NewEngine(items []models.RevenueItem, curve period.Curve, operationYears int) *Engine {
	e := &Engine{
		items:   items,
		index:   make(map[string]int, len(items)),
		years:   operationYears,
		taxable: make([][]float64, len(items)),
		base:    make([][]float64, len(items)),
	}

	for i, item := range items {
		if item.ID != "" {
			if _, dup := e.index[item.ID]; !dup {
				e.index[item.ID] = i
			}
		}
		e.taxable[i] = make([]float64, operationYears)
		e.base[i] = make([]float64, operationYears)
		for _, y := range period.YearRange(operationYears) {
			e.base[i][y-1] = ItemRevenue(item, y, 1)
			e.taxable[i][y-1] = ItemRevenue(item, y, curve.Rate(y))
		}
	}
	return e
}

// Items returns the configured items in input order.
func (e *Engine) Items() []models.RevenueItem {
	return e.items
}

// Has reports whether an item with the id exists.
func (e *Engine) Has(id string) bool {
	_, ok := e.index[id]
	return ok
}

func (e *Engine) inRange(year int) bool {
	return year >= 1 && year <= e.years
}

// ItemForYear returns the taxable revenue of the item with the given id.
func (e *Engine) ItemForYear(id string, year int) float64 {
	i, ok := e.index[id]
	if !ok || !e.inRange(year) {
		return 0
	}
	return e.taxable[i][year-1]
}

// ItemBaseForYear returns the escalated revenue of an item at full capacity.
func (e *Engine) ItemBaseForYear(id string, year int) float64 {
	i, ok := e.index[id]
	if !ok || !e.inRange(year) {
		return 0
	}
	return e.base[i][year-1]
}

// ForYear returns Σ items taxable revenue for an operation year.
func (e *Engine) ForYear(year int) float64 {
	if !e.inRange(year) {
		return 0
	}
	var total float64
	for i := range e.items {
		total += e.taxable[i][year-1]
	}
	return total
}

// BaseForYear returns Σ items escalated revenue at full capacity.
func (e *Engine) BaseForYear(year int) float64 {
	if !e.inRange(year) {
		return 0
	}
	var total float64
	for i := range e.items {
		total += e.base[i][year-1]
	}
	return total
}

// Total returns Σ ForYear over the operation horizon.
func (e *Engine) Total() float64 {
	return e.Series().Sum()
}

// Series returns taxable revenue per operation year.
func (e *Engine) Series() period.Series {
	s := period.NewSeries(e.years)
	for _, y := range period.YearRange(e.years) {
		s[y-1] = e.ForYear(y)
	}
	return s
}

// ItemSeries returns one item's taxable revenue per operation year, by position.
func (e *Engine) ItemSeries(pos int) period.Series {
	if pos < 0 || pos >= len(e.items) {
		return period.NewSeries(e.years)
	}
	return period.Series(e.taxable[pos]).Clone()
}

// OutputVATForYear returns Σ items output VAT for an operation year.
func (e *Engine) OutputVATForYear(year int) float64 {
	if !e.inRange(year) {
		return 0
	}
	var total float64
	for i, item := range e.items {
		total += OutputVAT(e.taxable[i][year-1], item.VATRate.F())
	}
	return total
}

// NonTaxForYear returns Σ items revenue net of VAT.
func (e *Engine) NonTaxForYear(year int) float64 {
	return e.ForYear(year) - e.OutputVATForYear(year)
}

// OutputVATSeries returns output VAT per operation year.
func (e *Engine) OutputVATSeries() period.Series {
	s := period.NewSeries(e.years)
	for _, y := range period.YearRange(e.years) {
		s[y-1] = e.OutputVATForYear(y)
	}
	return s
}

// NonTaxSeries returns revenue net of VAT per operation year.
func (e *Engine) NonTaxSeries() period.Series {
	return e.Series().Sub(e.OutputVATSeries())
}
