package projection_test

import (
	"context"
	"math"
	"testing"

	"project_feasibility/pkg/core/loader"
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/validate"
	"project_feasibility/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() models.ProjectConfig {
	return models.ProjectConfig{
		ProjectID: "water-plant",
		Name:      "Water Plant",
		Period:    models.Period{ConstructionYears: 2, OperationYears: 3},
		Revenue: models.RevenueConfig{Items: []models.RevenueItem{
			{ID: "r1", Name: "Water sales", PricingTemplate: models.TemplateQuantityPrice, Quantity: 100, UnitPrice: 1, VATRate: 0.13},
		}},
		Costs: models.CostConfig{
			RawMaterials: models.CostCategory{ApplyProductionRate: true, Items: []models.CostItem{
				{Name: "Chemicals", SourceType: models.SourcePercentage, LinkedRevenueID: models.LinkTotalRevenue, Percentage: 10, TaxRate: models.Ptr(13)},
			}},
			Wages: models.WageCategory{Items: []models.WageItem{{Name: "Operators", Employees: 2, SalaryPerEmployee: 3}}},
		},
		Assets: models.AssetsConfig{
			Construction: models.DepreciableAsset{OriginalValue: 100, UsefulLifeYears: 20, ResidualRatePercent: 5},
			Equipment:    models.DepreciableAsset{OriginalValue: 40, UsefulLifeYears: 10, ResidualRatePercent: 5},
		},
		Loan: models.LoanTerms{Principal: 60, AnnualRate: 0.05, TermYears: 3},
		Investment: models.InvestmentConfig{
			ConstructionInvestment: []models.Num{80, 60},
			WorkingCapital:         models.WorkingCapital{Amount: 10},
		},
	}
}

func run(cfg models.ProjectConfig) *projection.Result {
	return projection.NewProjectionEngine(projection.DefaultRates()).Run(cfg)
}

func TestRunRevenueRampScenario(t *testing.T) {
	result := run(sampleConfig())

	revenue := result.Series(projection.TableRevenueTax, "1")
	require.Len(t, revenue, 5)
	expected := period.Series{0, 0, 75, 85, 100}
	for i := range expected {
		if math.Abs(revenue[i]-expected[i]) > 1e-9 {
			t.Errorf("revenue year %d = %v, want %v", i+1, revenue[i], expected[i])
		}
	}

	row, ok := result.Table(projection.TableRevenueTax).Row("1.1")
	require.True(t, ok)
	assert.Equal(t, "Water sales", row.Label)
	require.NotNil(t, row.Total)
	assert.InDelta(t, 260, *row.Total, 1e-9)
}

func TestRunLoanScenario(t *testing.T) {
	cfg := sampleConfig()
	cfg.Period.OperationYears = 12
	cfg.Loan = models.LoanTerms{Principal: 1200, AnnualRate: 0.06, TermYears: 10}

	result := run(cfg)

	opening := result.Series(projection.TableLoanRepayment, "1.1")
	principal := result.Series(projection.TableLoanRepayment, "1.2.1")
	interest := result.Series(projection.TableLoanRepayment, "1.2.2")

	// first operation year is absolute year 3
	assert.InDelta(t, 1200, opening[2], 1e-9)
	assert.InDelta(t, 120, principal[2], 1e-9)
	assert.InDelta(t, 68.4, interest[2], 1e-9)
	assert.InDelta(t, 1200, principal.Sum(), 1e-6)

	// balances carry no total
	row, _ := result.Table(projection.TableLoanRepayment).Row("1.1")
	assert.Nil(t, row.Total)
	assert.True(t, result.Linkage.AllPassed, result.Report.Summary())
}

func TestRunConstructionYearsHaveNoInflow(t *testing.T) {
	result := run(sampleConfig())

	inflow := result.Series(projection.TableCashFlow, "1")
	outflow := result.Series(projection.TableCashFlow, "2")
	assert.Equal(t, 0.0, inflow[0])
	assert.Equal(t, 0.0, inflow[1])
	assert.InDelta(t, 80, outflow[0], 1e-9)
	assert.InDelta(t, 60, outflow[1], 1e-9)

	// working capital and residual value return in the final year
	assert.InDelta(t, 10, result.Series(projection.TableCashFlow, "1.4")[4], 1e-9)
	assert.InDelta(t, 100*0.05+40*0.05, result.Series(projection.TableCashFlow, "1.3")[4], 1e-9)
}

func TestRunOperatingCostLinksAcrossTables(t *testing.T) {
	result := run(sampleConfig())

	opCost := result.Series(projection.TableTotalCost, "1")
	// year 3: chemicals 10% of 100 × 0.75 net of 13% VAT, wages 6
	want := 7.5/1.13 + 6
	assert.InDelta(t, want, opCost[2], 1e-9)
	assert.Equal(t, opCost, result.Series(projection.TableCashFlow, "2.3"))

	ebit := result.Series(projection.TableProfit, "15")
	assert.Equal(t, ebit, result.Series(projection.TableLoanRepayment, "2.1"))
	assert.True(t, result.Linkage.AllPassed)
}

func TestRunIndicators(t *testing.T) {
	result := run(sampleConfig())
	fi := result.Indicators

	assert.InDelta(t, 150, fi.TotalInvestment, 1e-9)
	assert.InDelta(t, 90, fi.Equity, 1e-9)
	assert.InDelta(t, 0.06, fi.DiscountRate, 1e-12)
	require.NotNil(t, fi.IRRPreTax)
	cf := result.Series(projection.TableCashFlow, "3")
	var npv float64
	for i, v := range cf {
		npv += v / math.Pow(1+*fi.IRRPreTax, float64(i+1))
	}
	assert.InDelta(t, 0, npv, 1e-4)
}

func TestRunConstructionInterest(t *testing.T) {
	cfg := sampleConfig()
	cfg.Loan.ConstructionDraws = []models.Num{40, 20}

	result := run(cfg)
	fi := result.Indicators

	// year 1: 40/2 × 5% = 1; year 2: (40 + 20/2) × 5% = 2.5
	interest := result.Series(projection.TableLoanRepayment, "1.4")
	require.Len(t, interest, 5)
	assert.InDelta(t, 1, interest[0], 1e-9)
	assert.InDelta(t, 2.5, interest[1], 1e-9)
	assert.InDelta(t, 0, interest[2], 1e-9)

	assert.InDelta(t, 3.5, fi.ConstructionInterest, 1e-9)
	assert.InDelta(t, 153.5, fi.TotalInvestment, 1e-9)
	assert.InDelta(t, 93.5, fi.Equity, 1e-9)
	assert.InDelta(t, fi.AverageEBIT/153.5, fi.ROI, 1e-12)
	assert.InDelta(t, fi.AverageNetProfit/93.5, fi.ROE, 1e-12)

	// equity funds the capitalized interest too
	equityOut := result.Series(projection.TableEquityCashFlow, "2.1")
	assert.InDelta(t, 93.5, equityOut.Sum(), 1e-9)
}

func TestRunExplicitConstructionInterest(t *testing.T) {
	cfg := sampleConfig()
	cfg.Loan.ConstructionDraws = []models.Num{40, 20}
	cfg.Investment.ConstructionInterest = models.Ptr(6)

	fi := run(cfg).Indicators
	assert.InDelta(t, 6, fi.ConstructionInterest, 1e-9)
	assert.InDelta(t, 156, fi.TotalInvestment, 1e-9)
}

func TestRunCapsHorizon(t *testing.T) {
	for _, years := range []string{"1e20", "1e15", "101"} {
		t.Run(years, func(t *testing.T) {
			cfg, _, err := loader.Parse(`{"period":{"constructionYears":1,"operationYears":` + years + `}}`)
			require.NoError(t, err)

			var result *projection.Result
			require.NotPanics(t, func() { result = run(cfg) })
			assert.Equal(t, models.MaxPeriodYears, result.Period.OperationYears)
			assert.Len(t, result.Series(projection.TableCashFlow, "3"), models.MaxPeriodYears+1)

			var fields []string
			for _, i := range result.Report.ByCode(validate.CodeInvalidAmount) {
				fields = append(fields, i.Field)
			}
			assert.Contains(t, fields, "period.operationYears")
		})
	}
}

func TestRunNoInvestmentReportsNotConverged(t *testing.T) {
	cfg := sampleConfig()
	cfg.Investment = models.InvestmentConfig{}
	cfg.Loan = models.LoanTerms{}

	result := run(cfg)

	assert.Nil(t, result.Indicators.IRRPreTax)
	assert.NotEmpty(t, result.Report.ByCode(validate.CodeNotConverged))
	// other indicators still computed
	assert.NotZero(t, result.Indicators.NPVPreTax)
}

func TestRunCoercesGarbageInput(t *testing.T) {
	cfg := sampleConfig()
	cfg.Revenue.Items[0].UnitPrice = models.Num(math.NaN())
	cfg.Revenue.Items[0].VATRate = 2

	result := run(cfg)

	for _, v := range result.Series(projection.TableRevenueTax, "1") {
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
	assert.NotEmpty(t, result.Report.ByCode(validate.CodeInvalidVAT))
	assert.NotEmpty(t, result.Report.ByCode(validate.CodeMissingField))
}

func TestRunIsDeterministic(t *testing.T) {
	a := run(sampleConfig())
	b := run(sampleConfig())
	assert.Equal(t, a, b)
}

func TestRunCreditPoolNeverNegative(t *testing.T) {
	cfg := sampleConfig()
	cfg.Tax.DeductibleInputTax = 15

	result := run(cfg)

	credit := result.Series(projection.TableRevenueTax, "2.3")
	assert.LessOrEqual(t, credit.Sum(), 15+1e-9)
	for _, v := range result.Series(projection.TableRevenueTax, "2") {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestRunBatchKeepsOrder(t *testing.T) {
	engine := projection.NewProjectionEngine(projection.DefaultRates())
	cfgs := make([]models.ProjectConfig, 6)
	for i := range cfgs {
		cfgs[i] = sampleConfig()
		cfgs[i].Revenue.Items[0].Quantity = models.Num(100 * (i + 1))
	}

	results, err := engine.RunBatch(context.Background(), cfgs, 3)
	require.NoError(t, err)
	require.Len(t, results, 6)
	for i, r := range results {
		assert.InDelta(t, 100*float64(i+1), r.Series(projection.TableRevenueTax, "1")[4], 1e-9)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := projection.NewProjectionEngine(projection.DefaultRates())
	_, err := engine.RunBatch(ctx, []models.ProjectConfig{sampleConfig()}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
