package validate

import (
	"fmt"

	"project_feasibility/pkg/models"
)

// Config validates a project configuration. It never stops at the first
// problem; every issue is collected.
func Config(cfg models.ProjectConfig) *Report {
	r := NewReport()
	checkPeriod(r, cfg)
	checkProductionRates(r, cfg.ProductionRates)
	ids := checkRevenue(r, cfg.Revenue.Items)
	checkCosts(r, cfg.Costs, ids)
	checkAssets(r, cfg.Assets)
	checkLoan(r, cfg.Loan)
	checkConstructionInterest(r, cfg)
	checkRates(r, cfg)
	return r
}

func checkPeriod(r *Report, cfg models.ProjectConfig) {
	if cfg.Period.OperationYears.F() <= 0 {
		r.Errorf(CodeMissingField, "period.operationYears", "operation period must be at least one year")
	}
	if cfg.Period.ConstructionYears.F() < 0 {
		r.Errorf(CodeInvalidAmount, "period.constructionYears", "construction period cannot be negative")
	}
	if y := cfg.Period.ConstructionYears.F(); y > models.MaxPeriodYears {
		r.Errorf(CodeInvalidAmount, "period.constructionYears", "construction period %g exceeds %d years", y, models.MaxPeriodYears)
	}
	if y := cfg.Period.OperationYears.F(); y > models.MaxPeriodYears {
		r.Errorf(CodeInvalidAmount, "period.operationYears", "operation period %g exceeds %d years", y, models.MaxPeriodYears)
	}
}

func checkProductionRates(r *Report, rates []models.ProductionRate) {
	for i, pr := range rates {
		field := fmt.Sprintf("productionRates[%d]", i)
		if idx := pr.YearIndex.Int(); idx < 1 {
			r.Warnf(CodeInvalidAmount, field+".yearIndex", "year index %d is outside the operation period", idx)
		}
		if rate := pr.Rate.F(); rate < 0 || rate > 1 {
			r.Errorf(CodeInvalidAmount, field+".rate", "production rate %.4f must be within [0, 1]", rate)
		}
	}
}

// requiredRevenueFields lists the template fields that must be non-zero.
var requiredRevenueFields = map[string][]string{
	models.TemplateQuantityPrice:       {"quantity", "unitPrice"},
	models.TemplateAreaYieldPrice:      {"area", "yieldPerArea", "unitPrice"},
	models.TemplateCapacityUtilization: {"capacity", "utilizationRate", "unitPrice"},
	models.TemplateSubscription:        {"subscriptions", "unitPrice"},
	models.TemplateDirectAmount:        {"directAmount"},
}

func revenueField(item models.RevenueItem, name string) float64 {
	switch name {
	case "quantity":
		return item.Quantity.F()
	case "unitPrice":
		return item.UnitPrice.F()
	case "area":
		return item.Area.F()
	case "yieldPerArea":
		return item.YieldPerArea.F()
	case "capacity":
		return item.Capacity.F()
	case "utilizationRate":
		return item.UtilizationRate.F()
	case "subscriptions":
		return item.Subscriptions.F()
	case "directAmount":
		return item.DirectAmount.F()
	}
	return 0
}

func checkRevenue(r *Report, items []models.RevenueItem) map[string]bool {
	ids := make(map[string]bool, len(items))
	if len(items) == 0 {
		r.Warnf(CodeEmpty, "revenue.items", "no revenue items configured")
	}

	for i, item := range items {
		field := fmt.Sprintf("revenue.items[%d]", i)
		row := fmt.Sprintf("1.%d", i+1)

		if item.ID == "" {
			r.Add(CodeEmpty, SeverityError, field+".id", row, "revenue item has no id")
		} else if ids[item.ID] {
			r.Add(CodeInvalidAmount, SeverityWarning, field+".id", row, "duplicate revenue item id %q", item.ID)
		}
		ids[item.ID] = true

		if item.Name == "" {
			r.Add(CodeEmpty, SeverityWarning, field+".name", row, "revenue item has no name")
		}

		required, known := requiredRevenueFields[item.PricingTemplate]
		if !known {
			r.Add(CodeMissingField, SeverityError, field+".pricingTemplate", row, "unknown pricing template %q", item.PricingTemplate)
		}
		for _, name := range required {
			if revenueField(item, name) == 0 {
				r.Add(CodeMissingField, SeverityWarning, field+"."+name, row, "%s is missing, treated as 0", name)
			}
		}
		for _, name := range required {
			if revenueField(item, name) < 0 {
				r.Add(CodeInvalidAmount, SeverityWarning, field+"."+name, row, "%s is negative", name)
			}
		}

		if vat := item.VATRate.F(); vat < 0 || vat > 1 {
			r.Add(CodeInvalidVAT, SeverityError, field+".vatRate", row, "VAT rate %.4f must be within [0, 1]", vat)
		}
		if item.PriceIncreaseRate.F() > 0 && item.PriceIncreaseInterval.F() <= 0 {
			r.Add(CodeMissingField, SeverityWarning, field+".priceIncreaseInterval", row, "price increase rate set without an interval; no escalation applied")
		}
	}
	return ids
}

func checkCosts(r *Report, cfg models.CostConfig, revenueIDs map[string]bool) {
	categories := []struct {
		name string
		cat  models.CostCategory
	}{
		{"rawMaterials", cfg.RawMaterials},
		{"fuelPower", cfg.FuelPower},
		{"repair", cfg.Repair},
		{"otherExpenses", cfg.OtherExpenses},
	}

	for _, c := range categories {
		for i, item := range c.cat.Items {
			field := fmt.Sprintf("costs.%s.items[%d]", c.name, i)
			if item.Name == "" {
				r.Warnf(CodeEmpty, field+".name", "cost item has no name")
			}

			switch item.SourceType {
			case models.SourcePercentage:
				checkPercentage(r, field, item.Percentage.F())
				link := item.LinkedRevenueID
				if link != "" && link != models.LinkTotalRevenue && !revenueIDs[link] {
					r.Warnf(CodeMissingField, field+".linkedRevenueId", "revenue item %q not found; total revenue used", link)
				}
			case models.SourcePercentageOfFixedAssets:
				checkPercentage(r, field, item.Percentage.F())
			case models.SourceQuantityPrice:
				if item.Qty() == 0 || item.Unit() == 0 {
					r.Warnf(CodeMissingField, field, "quantity or unit price is missing, treated as 0")
				}
			case models.SourceDirectAmount:
				if item.DirectAmount.F() < 0 {
					r.Warnf(CodeInvalidAmount, field+".directAmount", "amount is negative")
				}
			default:
				r.Errorf(CodeMissingField, field+".sourceType", "unknown source type %q", item.SourceType)
			}

			if item.TaxRate != nil {
				if t := item.TaxRate.F(); t < 0 || t > 100 {
					r.Errorf(CodeInvalidVAT, field+".taxRate", "input VAT rate %.2f%% must be within [0, 100]", t)
				}
			}
		}
	}

	for i, w := range cfg.Wages.Items {
		field := fmt.Sprintf("costs.wages.items[%d]", i)
		if w.Employees.F() < 0 || w.SalaryPerEmployee.F() < 0 {
			r.Warnf(CodeInvalidAmount, field, "employees and salary cannot be negative")
		}
	}
	if t := cfg.Wages.TaxRate.F(); t < 0 || t > 100 {
		r.Errorf(CodeInvalidVAT, "costs.wages.taxRate", "input VAT rate %.2f%% must be within [0, 100]", t)
	}
}

func checkPercentage(r *Report, field string, pct float64) {
	if pct < 0 || pct > 100 {
		r.Errorf(CodeInvalidAmount, field+".percentage", "percentage %.2f must be within [0, 100]", pct)
	}
}

func checkAssets(r *Report, assets models.AssetsConfig) {
	for _, a := range []struct {
		name  string
		asset models.DepreciableAsset
	}{
		{"construction", assets.Construction},
		{"equipment", assets.Equipment},
		{"intangible", assets.Intangible},
	} {
		field := "assets." + a.name
		ov := a.asset.OriginalValue.F()
		if ov < 0 {
			r.Errorf(CodeInvalidAmount, field+".originalValue", "original value cannot be negative")
		}
		if ov != 0 && a.asset.UsefulLifeYears.F() <= 0 {
			r.Errorf(CodeInvalidAmount, field+".usefulLifeYears", "useful life must be positive; depreciation set to 0")
		}
		if rr := a.asset.ResidualRatePercent.F(); rr < 0 || rr > 100 {
			r.Errorf(CodeInvalidAmount, field+".residualRatePercent", "residual rate %.2f%% must be within [0, 100]", rr)
		}
	}
}

func checkLoan(r *Report, loan models.LoanTerms) {
	p := loan.Principal.F()
	if p < 0 {
		r.Errorf(CodeInvalidAmount, "loan.principal", "loan principal cannot be negative")
	}
	if p > 0 && loan.TermYears.F() <= 0 {
		r.Errorf(CodeInvalidAmount, "loan.termYears", "loan term must be positive; no repayment scheduled")
	}
	if loan.AnnualRate.F() < 0 {
		r.Errorf(CodeInvalidAmount, "loan.annualRate", "interest rate cannot be negative")
	}
	switch loan.RepaymentMethod {
	case "", models.RepaymentEqualPrincipal, models.RepaymentEqualInstallment:
	default:
		r.Warnf(CodeMissingField, "loan.repaymentMethod", "unknown repayment method %q; equal principal used", loan.RepaymentMethod)
	}
}

func checkConstructionInterest(r *Report, cfg models.ProjectConfig) {
	if ci := cfg.Investment.ConstructionInterest; ci != nil && ci.F() < 0 {
		r.Errorf(CodeInvalidAmount, "investment.constructionInterest", "construction-period interest cannot be negative")
	}
	drawn := 0.0
	for i, d := range cfg.Loan.ConstructionDraws {
		if d.F() < 0 {
			r.Errorf(CodeInvalidAmount, fmt.Sprintf("loan.constructionDraws[%d]", i), "loan draw cannot be negative")
		}
		drawn += d.F()
	}
	if p := cfg.Loan.Principal.F(); drawn > p+1e-9 {
		r.Warnf(CodeInvalidAmount, "loan.constructionDraws", "draws %.2f exceed the loan principal %.2f", drawn, p)
	}
	if n := len(cfg.Loan.ConstructionDraws); n > 0 && float64(n) > cfg.Period.ConstructionYears.F() {
		r.Warnf(CodeInvalidAmount, "loan.constructionDraws", "%d draws listed for a %g-year construction period; extra draws are ignored", n, cfg.Period.ConstructionYears.F())
	}
}

func checkRates(r *Report, cfg models.ProjectConfig) {
	rates := []struct {
		field string
		value *models.Num
	}{
		{"tax.urbanMaintenanceRate", cfg.Tax.UrbanMaintenanceRate},
		{"tax.educationSurchargeRate", cfg.Tax.EducationSurchargeRate},
		{"tax.incomeTaxRate", cfg.Tax.IncomeTaxRate},
		{"tax.statutorySurplusRate", cfg.Tax.StatutorySurplusRate},
	}
	for _, rate := range rates {
		if rate.value == nil {
			continue
		}
		if v := rate.value.F(); v < 0 || v > 1 {
			r.Errorf(CodeInvalidAmount, rate.field, "rate %.4f must be within [0, 1]", v)
		}
	}
	if cfg.Tax.DeductibleInputTax.F() < 0 {
		r.Errorf(CodeInvalidAmount, "tax.deductibleInputTax", "credit pool cannot be negative")
	}
	if cfg.DiscountRate != nil && cfg.DiscountRate.F() <= -1 {
		r.Errorf(CodeInvalidAmount, "discountRate", "discount rate must be greater than -1")
	}
}
