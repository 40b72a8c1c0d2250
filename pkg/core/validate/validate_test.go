package validate

import (
	"testing"

	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() models.ProjectConfig {
	return models.ProjectConfig{
		ProjectID: "p1",
		Period:    models.Period{ConstructionYears: 2, OperationYears: 10},
		Revenue: models.RevenueConfig{Items: []models.RevenueItem{
			{ID: "r1", Name: "Water", PricingTemplate: models.TemplateQuantityPrice, Quantity: 100, UnitPrice: 1, VATRate: 0.09},
		}},
		Costs: models.CostConfig{
			RawMaterials: models.CostCategory{Items: []models.CostItem{
				{Name: "chem", SourceType: models.SourcePercentage, LinkedRevenueID: "r1", Percentage: 5, TaxRate: models.Ptr(13)},
			}},
		},
		Assets: models.AssetsConfig{
			Construction: models.DepreciableAsset{OriginalValue: 1000, UsefulLifeYears: 20, ResidualRatePercent: 5},
		},
		Loan: models.LoanTerms{Principal: 500, AnnualRate: 0.049, TermYears: 8},
	}
}

func TestConfigClean(t *testing.T) {
	r := Config(validConfig())
	assert.Empty(t, r.Issues, r.Summary())
	assert.False(t, r.HasErrors())
}

func TestConfigReportsCodes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *models.ProjectConfig)
		code   Code
		field  string
	}{
		{"empty id", func(c *models.ProjectConfig) { c.Revenue.Items[0].ID = "" }, CodeEmpty, "revenue.items[0].id"},
		{"vat above one", func(c *models.ProjectConfig) { c.Revenue.Items[0].VATRate = 13 }, CodeInvalidVAT, "revenue.items[0].vatRate"},
		{"missing unit price", func(c *models.ProjectConfig) { c.Revenue.Items[0].UnitPrice = 0 }, CodeMissingField, "revenue.items[0].unitPrice"},
		{"unknown template", func(c *models.ProjectConfig) { c.Revenue.Items[0].PricingTemplate = "x" }, CodeMissingField, "revenue.items[0].pricingTemplate"},
		{"rate above one", func(c *models.ProjectConfig) {
			c.ProductionRates = []models.ProductionRate{{YearIndex: 1, Rate: 1.5}}
		}, CodeInvalidAmount, "productionRates[0].rate"},
		{"cost tax rate", func(c *models.ProjectConfig) { c.Costs.RawMaterials.Items[0].TaxRate = models.Ptr(130) }, CodeInvalidVAT, "costs.rawMaterials.items[0].taxRate"},
		{"dangling link", func(c *models.ProjectConfig) { c.Costs.RawMaterials.Items[0].LinkedRevenueID = "gone" }, CodeMissingField, "costs.rawMaterials.items[0].linkedRevenueId"},
		{"zero life", func(c *models.ProjectConfig) { c.Assets.Construction.UsefulLifeYears = 0 }, CodeInvalidAmount, "assets.construction.usefulLifeYears"},
		{"zero loan term", func(c *models.ProjectConfig) { c.Loan.TermYears = 0 }, CodeInvalidAmount, "loan.termYears"},
		{"no operation", func(c *models.ProjectConfig) { c.Period.OperationYears = 0 }, CodeMissingField, "period.operationYears"},
		{"operation too long", func(c *models.ProjectConfig) { c.Period.OperationYears = 1e20 }, CodeInvalidAmount, "period.operationYears"},
		{"construction too long", func(c *models.ProjectConfig) { c.Period.ConstructionYears = 101 }, CodeInvalidAmount, "period.constructionYears"},
		{"negative draw", func(c *models.ProjectConfig) { c.Loan.ConstructionDraws = []models.Num{100, -5} }, CodeInvalidAmount, "loan.constructionDraws[1]"},
		{"draws above principal", func(c *models.ProjectConfig) { c.Loan.ConstructionDraws = []models.Num{400, 200} }, CodeInvalidAmount, "loan.constructionDraws"},
		{"negative construction interest", func(c *models.ProjectConfig) { c.Investment.ConstructionInterest = models.Ptr(-1) }, CodeInvalidAmount, "investment.constructionInterest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			r := Config(cfg)

			issues := r.ByCode(tt.code)
			require.NotEmpty(t, issues, r.Summary())
			var fields []string
			for _, i := range issues {
				fields = append(fields, i.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	a.Warnf(CodeEmpty, "x", "first")
	b := NewReport()
	b.Errorf(CodeNotConverged, "irr", "no root")

	a.Merge(b)
	a.Merge(nil)

	require.Len(t, a.Issues, 2)
	assert.True(t, a.HasErrors())
	assert.Equal(t, "[NOT_CONVERGED] irr: no root", a.Issues[1].String())
}

func TestSeriesLinkage(t *testing.T) {
	ok := SeriesLinkage("revenue", period.Series{1, 2, 3}, period.Series{1, 2, 3}, DefaultTolerance)
	assert.True(t, ok.Passed)

	bad := SeriesLinkage("ebit", period.Series{1, 2, 3}, period.Series{1, 2.5, 3}, DefaultTolerance)
	assert.False(t, bad.Passed)
	assert.Equal(t, 2, bad.Year)
	assert.InDelta(t, 0.5, bad.Difference, 1e-12)

	rep := NewLinkageReport(ok, bad, ValueLinkage("principal", 100, 100, DefaultTolerance))
	assert.False(t, rep.AllPassed)
	assert.Equal(t, []string{"ebit"}, rep.FailedChecks)

	r := NewReport()
	rep.Into(r)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, "linkage.ebit", r.Issues[0].Field)
}
