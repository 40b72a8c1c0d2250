package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/validate"
	"project_feasibility/pkg/models"
)

func sampleConfig() models.ProjectConfig {
	return models.ProjectConfig{
		ProjectID: "cli",
		Period:    models.Period{ConstructionYears: 1, OperationYears: 3},
		Revenue: models.RevenueConfig{Items: []models.RevenueItem{
			{ID: "r1", Name: "Sales", PricingTemplate: models.TemplateDirectAmount, DirectAmount: 300, VATRate: 0.13},
		}},
		Investment: models.InvestmentConfig{ConstructionInvestment: []models.Num{600}},
	}
}

func TestTableDataShape(t *testing.T) {
	res := projection.NewProjectionEngine(projection.DefaultRates()).Run(sampleConfig())
	tbl := res.Table(projection.TableCashFlow)
	require.NotNil(t, tbl)

	data := tableData(tbl)
	assert.Equal(t, []string{"No.", "Item", "Total", "C1", "1", "2", "3"}, data[0])
	assert.Len(t, data, len(tbl.Rows)+1)
	for _, row := range data {
		assert.Len(t, row, 7)
	}
}

func TestRenderFormats(t *testing.T) {
	res := projection.NewProjectionEngine(projection.DefaultRates()).Run(sampleConfig())

	out, err := render(res, "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))

	out, err = render(res, "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# cli feasibility projection")

	_, err = render(res, "xml")
	assert.Error(t, err)
}

func TestRenderSingleTable(t *testing.T) {
	res := projection.NewProjectionEngine(projection.DefaultRates()).Run(sampleConfig())

	out, err := renderTable(res, projection.TableCashFlow, "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Project Investment Cash Flow")
	assert.Contains(t, out, "| No. | Item | Total | C1 | 1 | 2 | 3 |")
	assert.NotContains(t, out, "## Profit and Profit Distribution")
	assert.NotContains(t, out, "Financial indicators")

	out, err = renderTable(res, projection.TableLoanRepayment, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"key": "loan_repayment"`)

	_, err = renderTable(res, "nope", "markdown")
	assert.ErrorContains(t, err, "cash_flow")

	_, err = renderTable(res, projection.TableCashFlow, "html")
	assert.Error(t, err)
}

func TestSummaryTable(t *testing.T) {
	engine := projection.NewProjectionEngine(projection.DefaultRates())
	data := summaryTable([]*projection.Result{engine.Run(sampleConfig())})
	require.Len(t, data, 2)
	assert.Equal(t, "cli", data[1][0])
}

func TestIssueLine(t *testing.T) {
	color.NoColor = true
	line := issueLine(validate.Issue{Code: validate.CodeInvalidVAT, Severity: validate.SeverityError, Field: "revenue.items[0].vatRate", Message: "out of range"})
	assert.Equal(t, "INVALID_VAT revenue.items[0].vatRate: out of range", line)
}
