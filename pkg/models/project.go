package models

// All monetary amounts are in 10k-yuan (万元) unless a field says otherwise.
// Rates named *Rate are decimals (0.13) except where the comment says percent.

// ProjectConfig is the complete input snapshot for one projection pass.
type ProjectConfig struct {
	ProjectID       string           `json:"projectId"`
	Name            string           `json:"name"`
	Period          Period           `json:"period"`
	ProductionRates []ProductionRate `json:"productionRates,omitempty"`
	Revenue         RevenueConfig    `json:"revenue"`
	Costs           CostConfig       `json:"costs"`
	Assets          AssetsConfig     `json:"assets"`
	Loan            LoanTerms        `json:"loan"`
	Investment      InvestmentConfig `json:"investment"`
	Tax             TaxSettings      `json:"tax"`
	DiscountRate    *Num             `json:"discountRate,omitempty"` // decimal, default 0.06
}

// MaxPeriodYears caps each part of the horizon.
const MaxPeriodYears = 100

// Period is the construction + operation horizon in whole years.
type Period struct {
	ConstructionYears Num `json:"constructionYears"`
	OperationYears    Num `json:"operationYears"`
}

// ProductionRate is the capacity utilization for one operation year.
type ProductionRate struct {
	YearIndex Num `json:"yearIndex"` // 1-based operation year
	Rate      Num `json:"rate"`      // [0,1]
}

// =============================================================================
// REVENUE
// =============================================================================

// Pricing templates.
const (
	TemplateQuantityPrice       = "quantityPrice"
	TemplateAreaYieldPrice      = "areaYieldPrice"
	TemplateCapacityUtilization = "capacityUtilization"
	TemplateSubscription        = "subscription"
	TemplateDirectAmount        = "directAmount"
)

// Price units. Amounts in yuan are converted to 10k-yuan.
const (
	PriceUnitWanYuan = "wan-yuan"
	PriceUnitYuan    = "yuan"
)

type RevenueConfig struct {
	Items []RevenueItem `json:"items"`
}

// RevenueItem is one revenue line. Only the fields of its PricingTemplate are read.
type RevenueItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PricingTemplate string `json:"pricingTemplate"`

	Quantity        Num `json:"quantity,omitempty"`
	UnitPrice       Num `json:"unitPrice,omitempty"`
	Area            Num `json:"area,omitempty"`
	YieldPerArea    Num `json:"yieldPerArea,omitempty"`
	Capacity        Num `json:"capacity,omitempty"`
	UtilizationRate Num `json:"utilizationRate,omitempty"`
	Subscriptions   Num `json:"subscriptions,omitempty"`
	DirectAmount    Num `json:"directAmount,omitempty"`

	PriceUnit string `json:"priceUnit,omitempty"`

	VATRate               Num `json:"vatRate"`                         // decimal
	PriceIncreaseInterval Num `json:"priceIncreaseInterval,omitempty"` // years
	PriceIncreaseRate     Num `json:"priceIncreaseRate,omitempty"`     // percent
}

// =============================================================================
// COSTS
// =============================================================================

// Cost item source types.
const (
	SourcePercentage              = "percentage"
	SourceQuantityPrice           = "quantityPrice"
	SourceDirectAmount            = "directAmount"
	SourcePercentageOfFixedAssets = "percentageOfFixedAssets"
)

// LinkTotalRevenue links a percentage cost item to the whole project revenue.
const LinkTotalRevenue = "total"

type CostConfig struct {
	RawMaterials  CostCategory `json:"rawMaterials"`
	FuelPower     CostCategory `json:"fuelPower"`
	Wages         WageCategory `json:"wages"`
	Repair        CostCategory `json:"repair"`
	OtherExpenses CostCategory `json:"otherExpenses"`
}

type CostCategory struct {
	ApplyProductionRate bool       `json:"applyProductionRate"`
	Items               []CostItem `json:"items"`
}

// CostItem is a tagged variant keyed by SourceType.
type CostItem struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	SourceType string `json:"sourceType"`

	LinkedRevenueID string `json:"linkedRevenueId,omitempty"`
	Percentage      Num    `json:"percentage,omitempty"` // percent

	Quantity  Num `json:"quantity,omitempty"`
	UnitPrice Num `json:"unitPrice,omitempty"`
	// Fuel and power items historically use consumption/price.
	Consumption Num `json:"consumption,omitempty"`
	Price       Num `json:"price,omitempty"`

	DirectAmount Num `json:"directAmount,omitempty"`

	TaxRate *Num `json:"taxRate,omitempty"` // input VAT percent
}

// Qty returns Quantity, or Consumption when Quantity is unset.
func (c CostItem) Qty() float64 {
	if q := c.Quantity.F(); q != 0 {
		return q
	}
	return c.Consumption.F()
}

// Unit returns UnitPrice, or Price when UnitPrice is unset.
func (c CostItem) Unit() float64 {
	if p := c.UnitPrice.F(); p != 0 {
		return p
	}
	return c.Price.F()
}

type WageCategory struct {
	ApplyProductionRate bool       `json:"applyProductionRate"`
	TaxRate             Num        `json:"taxRate,omitempty"` // percent
	DirectAmount        Num        `json:"directAmount,omitempty"`
	Items               []WageItem `json:"items"`
}

type WageItem struct {
	Name              string `json:"name"`
	Employees         Num    `json:"employees"`
	SalaryPerEmployee Num    `json:"salaryPerEmployee"`
	WelfareRate       Num    `json:"welfareRate,omitempty"`      // percent
	ChangeInterval    Num    `json:"changeInterval,omitempty"`   // years
	ChangePercentage  Num    `json:"changePercentage,omitempty"` // percent
}

// =============================================================================
// ASSETS, LOAN, INVESTMENT
// =============================================================================

// DepreciableAsset is a fixed or intangible asset depreciated straight-line.
type DepreciableAsset struct {
	OriginalValue       Num `json:"originalValue"`
	UsefulLifeYears     Num `json:"usefulLifeYears"`
	ResidualRatePercent Num `json:"residualRatePercent"`
}

type AssetsConfig struct {
	Construction DepreciableAsset `json:"construction"` // row A
	Equipment    DepreciableAsset `json:"equipment"`    // row D
	Intangible   DepreciableAsset `json:"intangible"`   // row E
}

// Repayment methods.
const (
	RepaymentEqualPrincipal   = "equal-principal"
	RepaymentEqualInstallment = "equal-installment"
)

type LoanTerms struct {
	Principal        Num    `json:"principal"`
	AnnualRate       Num    `json:"annualRate"` // decimal
	TermYears        Num    `json:"termYears"`
	GracePeriodYears Num    `json:"gracePeriodYears,omitempty"` // reserved
	RepaymentMethod  string `json:"repaymentMethod,omitempty"`
	// ConstructionDraws lists the amount drawn in each construction year.
	// Interest on them is capitalized as construction-period interest.
	ConstructionDraws []Num `json:"constructionDraws,omitempty"`
}

// InvestmentEstimate is the construction investment estimate split by component.
type InvestmentEstimate struct {
	BuildingInstallation Num `json:"buildingInstallation"`
	Equipment            Num `json:"equipment"`
	OtherEngineering     Num `json:"otherEngineering"`
	Land                 Num `json:"land"`
	Reserves             Num `json:"reserves"`
}

type WorkingCapital struct {
	Amount Num `json:"amount"`
	Year   Num `json:"year,omitempty"` // absolute year; 0 = first operation year
}

type InvestmentConfig struct {
	// ConstructionInvestment lists the outlay per construction year. When
	// empty the Estimate is allocated across the construction years.
	ConstructionInvestment []Num              `json:"constructionInvestment,omitempty"`
	Estimate               InvestmentEstimate `json:"estimate"`
	WorkingCapital         WorkingCapital     `json:"workingCapital"`
	MaintenanceInvestment  Num                `json:"maintenanceInvestment,omitempty"` // per operation year
	SubsidyIncome          Num                `json:"subsidyIncome,omitempty"`         // per operation year
	Equity                 *Num               `json:"equity,omitempty"`
	// ConstructionInterest overrides the interest computed from
	// Loan.ConstructionDraws.
	ConstructionInterest *Num `json:"constructionInterest,omitempty"`
}

// TaxSettings holds tax rates as decimals. Nil pointers take the defaults.
type TaxSettings struct {
	UrbanMaintenanceRate   *Num `json:"urbanMaintenanceRate,omitempty"`   // 0.07
	EducationSurchargeRate *Num `json:"educationSurchargeRate,omitempty"` // 0.05
	IncomeTaxRate          *Num `json:"incomeTaxRate,omitempty"`          // 0.25
	StatutorySurplusRate   *Num `json:"statutorySurplusRate,omitempty"`   // 0.10
	DeductibleInputTax     Num  `json:"deductibleInputTax,omitempty"`     // fixed-asset VAT credit pool
}

// Defaults applied when a rate pointer is nil.
const (
	DefaultDiscountRate           = 0.06
	DefaultUrbanMaintenanceRate   = 0.07
	DefaultEducationSurchargeRate = 0.05
	DefaultIncomeTaxRate          = 0.25
	DefaultStatutorySurplusRate   = 0.10
)
