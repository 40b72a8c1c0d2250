// Package revenue evaluates revenue line items per operation year and splits
// taxable revenue into net income and output VAT.
package revenue

import (
	"math"

	"project_feasibility/pkg/models"
)

// yuanPerWan converts amounts quoted in yuan to 10k-yuan.
const yuanPerWan = 10000.0

// =============================================================================
// PURE ITEM FORMULAS
// =============================================================================

// BaseAmount evaluates the item's pricing template for a full-capacity year
// before escalation. Unknown templates and missing fields yield 0.
//
// FORMULA (per template):
//
//	quantityPrice       = quantity × unitPrice
//	areaYieldPrice      = area × yieldPerArea × unitPrice
//	capacityUtilization = capacity × utilizationRate × unitPrice
//	subscription        = subscriptions × unitPrice
//	directAmount        = directAmount
func BaseAmount(item models.RevenueItem) float64 {
	var base float64
	switch item.PricingTemplate {
	case models.TemplateQuantityPrice:
		base = item.Quantity.F() * item.UnitPrice.F()
	case models.TemplateAreaYieldPrice:
		base = item.Area.F() * item.YieldPerArea.F() * item.UnitPrice.F()
	case models.TemplateCapacityUtilization:
		base = item.Capacity.F() * item.UtilizationRate.F() * item.UnitPrice.F()
	case models.TemplateSubscription:
		base = item.Subscriptions.F() * item.UnitPrice.F()
	case models.TemplateDirectAmount:
		base = item.DirectAmount.F()
	default:
		return 0
	}

	if item.PriceUnit == models.PriceUnitYuan {
		base /= yuanPerWan
	}
	return finite(base)
}

// EscalationFactor returns the stepped price escalation for an operation year.
//
// FORMULA: (1 + rate/100)^floor((year - 1) / interval)
//
// Returns 1 when either interval or rate is not positive.
func EscalationFactor(item models.RevenueItem, operationYear int) float64 {
	interval := item.PriceIncreaseInterval.F()
	rate := item.PriceIncreaseRate.F()
	if interval <= 0 || rate <= 0 || operationYear < 1 {
		return 1
	}
	steps := math.Floor(float64(operationYear-1) / interval)
	return math.Pow(1+rate/100, steps)
}

// ItemRevenue returns the taxable (VAT-inclusive) revenue of one item.
//
// FORMULA: base × escalation(year) × productionRate
func ItemRevenue(item models.RevenueItem, operationYear int, productionRate float64) float64 {
	return finite(BaseAmount(item) * EscalationFactor(item, operationYear) * productionRate)
}

// NonTaxIncome strips VAT from a taxable amount.
//
// FORMULA: taxable / (1 + vatRate)
func NonTaxIncome(taxable, vatRate float64) float64 {
	if 1+vatRate == 0 {
		return taxable
	}
	return taxable / (1 + vatRate)
}

// OutputVAT is the VAT embedded in a taxable amount.
//
// FORMULA: taxable - taxable / (1 + vatRate)
func OutputVAT(taxable, vatRate float64) float64 {
	return taxable - NonTaxIncome(taxable, vatRate)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
