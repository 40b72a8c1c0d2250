// Package cost computes the five operating-cost categories per operation year
// together with the input VAT embedded in each.
package cost

import (
	"math"

	"project_feasibility/pkg/models"
)

// Category identifies one operating-cost category.
type Category string

const (
	RawMaterials  Category = "rawMaterials"
	FuelPower     Category = "fuelPower"
	Wages         Category = "wages"
	Repair        Category = "repair"
	OtherExpenses Category = "otherExpenses"
)

// Categories lists every category in table order.
var Categories = []Category{RawMaterials, FuelPower, Wages, Repair, OtherExpenses}

// Default input VAT rates (percent) when an item leaves taxRate unset.
const (
	DefaultFuelTaxRate   = 13.0
	DefaultRepairTaxRate = 13.0
	DefaultOtherTaxRate  = 6.0
)

// fuelPerLitreNames are fuel items priced in yuan per unit whose amount is
// converted to 10k-yuan.
var fuelPerLitreNames = map[string]bool{
	"汽油": true,
	"柴油": true,
}

// =============================================================================
// PURE FORMULAS
// =============================================================================

// InputVAT returns the VAT embedded in a tax-inclusive amount.
//
// FORMULA: amount × t / (1 + t), t = taxRatePercent / 100
func InputVAT(amount, taxRatePercent float64) float64 {
	t := taxRatePercent / 100
	if 1+t == 0 {
		return 0
	}
	return finite(amount * t / (1 + t))
}

// FuelAmount returns consumption × price, except gasoline and diesel which
// are price × consumption / 10000.
func FuelAmount(name string, consumption, price float64) float64 {
	if fuelPerLitreNames[name] {
		return price * consumption / 10000
	}
	return consumption * price
}

// WageForYear returns the yearly wage bill of one wage item.
//
// FORMULA:
//
//	salary = salaryPerEmployee × (1 + changePercentage/100)^floor((year-1)/changeInterval)
//	wages  = employees × salary × (1 + welfareRate/100)
func WageForYear(item models.WageItem, operationYear int) float64 {
	salary := item.SalaryPerEmployee.F()
	interval := item.ChangeInterval.F()
	if interval > 0 && item.ChangePercentage.F() != 0 && operationYear >= 1 {
		steps := math.Floor(float64(operationYear-1) / interval)
		salary *= math.Pow(1+item.ChangePercentage.F()/100, steps)
	}
	return finite(item.Employees.F() * salary * (1 + item.WelfareRate.F()/100))
}

// TaxRateOf returns the item's input VAT percent or the category default.
func TaxRateOf(item models.CostItem, cat Category) float64 {
	if item.TaxRate != nil {
		return item.TaxRate.F()
	}
	switch cat {
	case FuelPower:
		return DefaultFuelTaxRate
	case Repair:
		return DefaultRepairTaxRate
	case OtherExpenses:
		return DefaultOtherTaxRate
	default:
		return 0
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
