package cost

import (
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/core/revenue"
	"project_feasibility/pkg/models"
)

// Line is one evaluated cost item over the operation horizon.
type Line struct {
	Name     string
	Amount   period.Series // tax-inclusive
	InputVAT period.Series
}

// Net returns amount less input VAT.
func (l Line) Net() period.Series {
	return l.Amount.Sub(l.InputVAT)
}

// Engine evaluates all cost categories. Lines are computed once at
// construction.
type Engine struct {
	years int
	lines map[Category][]Line
}

// NewEngine evaluates the cost configuration against revenue. fixedAssets is
// the depreciable fixed-asset investment used by percentage-of-fixed-asset
// repair items.
func NewEngine(cfg models.CostConfig, rev *revenue.Engine, curve period.Curve, operationYears int, fixedAssets float64) *Engine {
	e := &Engine{
		years: operationYears,
		lines: make(map[Category][]Line, len(Categories)),
	}

	b := itemBuilder{rev: rev, curve: curve, years: operationYears, fixedAssets: fixedAssets}
	e.lines[RawMaterials] = b.category(RawMaterials, cfg.RawMaterials)
	e.lines[FuelPower] = b.category(FuelPower, cfg.FuelPower)
	e.lines[Wages] = b.wages(cfg.Wages)
	e.lines[Repair] = b.category(Repair, cfg.Repair)
	e.lines[OtherExpenses] = b.category(OtherExpenses, cfg.OtherExpenses)
	return e
}

// Lines returns the evaluated items of a category.
func (e *Engine) Lines(cat Category) []Line {
	return e.lines[cat]
}

// CategoryForYear returns the tax-inclusive amount of a category.
func (e *Engine) CategoryForYear(cat Category, year int) float64 {
	var total float64
	for _, l := range e.lines[cat] {
		total += l.Amount.At(year)
	}
	return total
}

// CategoryInputVATForYear returns the input VAT of a category.
func (e *Engine) CategoryInputVATForYear(cat Category, year int) float64 {
	var total float64
	for _, l := range e.lines[cat] {
		total += l.InputVAT.At(year)
	}
	return total
}

// CategorySeries returns a category's tax-inclusive amount per year.
func (e *Engine) CategorySeries(cat Category) period.Series {
	s := period.NewSeries(e.years)
	for _, y := range period.YearRange(e.years) {
		s[y-1] = e.CategoryForYear(cat, y)
	}
	return s
}

// CategoryInputVATSeries returns a category's input VAT per year.
func (e *Engine) CategoryInputVATSeries(cat Category) period.Series {
	s := period.NewSeries(e.years)
	for _, y := range period.YearRange(e.years) {
		s[y-1] = e.CategoryInputVATForYear(cat, y)
	}
	return s
}

// DeductibleInputVATForYear is the input VAT credited against output VAT.
// Only raw materials and fuel/power qualify.
func (e *Engine) DeductibleInputVATForYear(year int) float64 {
	return e.CategoryInputVATForYear(RawMaterials, year) + e.CategoryInputVATForYear(FuelPower, year)
}

// OperatingCostForYear returns the operating cost of one year.
//
// FORMULA: net(rawMaterials) + net(fuelPower) + wages + repair + otherExpenses
//
// Only raw materials and fuel/power are taken net of input VAT.
func (e *Engine) OperatingCostForYear(year int) float64 {
	net := func(cat Category) float64 {
		return e.CategoryForYear(cat, year) - e.CategoryInputVATForYear(cat, year)
	}
	return net(RawMaterials) + net(FuelPower) +
		e.CategoryForYear(Wages, year) +
		e.CategoryForYear(Repair, year) +
		e.CategoryForYear(OtherExpenses, year)
}

// OperatingCostSeries returns operating cost per operation year.
func (e *Engine) OperatingCostSeries() period.Series {
	s := period.NewSeries(e.years)
	for _, y := range period.YearRange(e.years) {
		s[y-1] = e.OperatingCostForYear(y)
	}
	return s
}

// DeductibleInputVATSeries returns deductible input VAT per operation year.
func (e *Engine) DeductibleInputVATSeries() period.Series {
	s := period.NewSeries(e.years)
	for _, y := range period.YearRange(e.years) {
		s[y-1] = e.DeductibleInputVATForYear(y)
	}
	return s
}

// Total returns Σ operating cost over the operation horizon.
func (e *Engine) Total() float64 {
	return e.OperatingCostSeries().Sum()
}

// =============================================================================
// ITEM EVALUATION
// =============================================================================

type itemBuilder struct {
	rev         *revenue.Engine
	curve       period.Curve
	years       int
	fixedAssets float64
}

func (b itemBuilder) rate(apply bool, year int) float64 {
	if apply {
		return b.curve.Rate(year)
	}
	return 1
}

func (b itemBuilder) category(cat Category, cfg models.CostCategory) []Line {
	lines := make([]Line, 0, len(cfg.Items))
	for _, item := range cfg.Items {
		taxRate := TaxRateOf(item, cat)
		line := Line{
			Name:     item.Name,
			Amount:   period.NewSeries(b.years),
			InputVAT: period.NewSeries(b.years),
		}
		for _, y := range period.YearRange(b.years) {
			amount := finite(b.itemAmount(cat, item, y) * b.rate(cfg.ApplyProductionRate, y))
			line.Amount[y-1] = amount
			line.InputVAT[y-1] = InputVAT(amount, taxRate)
		}
		lines = append(lines, line)
	}
	return lines
}

// itemAmount evaluates a cost item's source before the production rate.
func (b itemBuilder) itemAmount(cat Category, item models.CostItem, year int) float64 {
	switch item.SourceType {
	case models.SourcePercentage:
		return b.revenueBase(item.LinkedRevenueID, year) * item.Percentage.F() / 100
	case models.SourceQuantityPrice:
		if cat == FuelPower {
			return FuelAmount(item.Name, item.Qty(), item.Unit())
		}
		return item.Qty() * item.Unit()
	case models.SourceDirectAmount:
		return item.DirectAmount.F()
	case models.SourcePercentageOfFixedAssets:
		return b.fixedAssets * item.Percentage.F() / 100
	default:
		return 0
	}
}

// revenueBase returns the escalated, un-ramped revenue a percentage item
// refers to. Unknown ids fall back to the project total.
func (b itemBuilder) revenueBase(linkedID string, year int) float64 {
	if b.rev == nil {
		return 0
	}
	if linkedID == "" || linkedID == models.LinkTotalRevenue || !b.rev.Has(linkedID) {
		return b.rev.BaseForYear(year)
	}
	return b.rev.ItemBaseForYear(linkedID, year)
}

func (b itemBuilder) wages(cfg models.WageCategory) []Line {
	taxRate := cfg.TaxRate.F()
	if len(cfg.Items) == 0 {
		if cfg.DirectAmount.F() == 0 {
			return nil
		}
		line := Line{Name: "wages", Amount: period.NewSeries(b.years), InputVAT: period.NewSeries(b.years)}
		for _, y := range period.YearRange(b.years) {
			amount := cfg.DirectAmount.F() * b.rate(cfg.ApplyProductionRate, y)
			line.Amount[y-1] = amount
			line.InputVAT[y-1] = InputVAT(amount, taxRate)
		}
		return []Line{line}
	}

	lines := make([]Line, 0, len(cfg.Items))
	for _, item := range cfg.Items {
		line := Line{Name: item.Name, Amount: period.NewSeries(b.years), InputVAT: period.NewSeries(b.years)}
		for _, y := range period.YearRange(b.years) {
			amount := WageForYear(item, y) * b.rate(cfg.ApplyProductionRate, y)
			line.Amount[y-1] = amount
			line.InputVAT[y-1] = InputVAT(amount, taxRate)
		}
		lines = append(lines, line)
	}
	return lines
}
