package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project_feasibility/pkg/core/calc"
	"project_feasibility/pkg/core/period"
	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/validate"
)

func TestTruncate2NeverRounds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.239, "1.23"},
		{1.2, "1.20"},
		{-1.239, "-1.23"},
		{1000.999, "1000.99"},
		{0.004, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate2(tt.in).StringFixed(2), "in=%v", tt.in)
	}
}

func TestFormatAmountBlankZero(t *testing.T) {
	assert.Equal(t, "", FormatAmount(0))
	assert.Equal(t, "", FormatAmount(0.004))
	assert.Equal(t, "", FormatAmount(-0.009))
	assert.Equal(t, "12.34", FormatAmount(12.345))
}

func TestFormatRatioAndRate(t *testing.T) {
	assert.Equal(t, "19.66%", FormatRatio(0.196679))
	assert.Equal(t, "n/a", FormatRate(nil))
	r := 0.08
	assert.Equal(t, "8.00%", FormatRate(&r))
}

func TestFormatPayback(t *testing.T) {
	assert.Equal(t, "4.50", FormatPayback(calc.Payback{Years: 4.5, Recovered: true}))
	assert.Equal(t, "not recovered (>5)", FormatPayback(calc.Payback{Years: 6}))
	assert.Equal(t, "n/a", FormatPayback(calc.Payback{}))
	assert.Equal(t, "n/a", FormatPayback(calc.PaybackPeriod([]float64{0, 0, 0})))
}

func TestYearHeaders(t *testing.T) {
	assert.Equal(t, []string{"C1", "C2", "1", "2", "3"}, YearHeaders(2, 3))
}

func sampleResult() *projection.Result {
	total := 150.0
	tbl := &projection.Table{
		Key:               projection.TableCashFlow,
		Title:             "Project cash flow",
		ConstructionYears: 1,
		OperationYears:    2,
		Rows: []projection.Row{
			{ID: "1", Label: "Cash inflow", Total: &total, Values: period.Series{0, 70, 80}},
			{ID: "3", Label: "Net cash flow", Total: &total, Values: period.Series{-100, 120.456, 0}},
			{ID: "4", Label: "Cumulative", Values: period.Series{-100, 20.456, 20.456}},
		},
	}
	rep := validate.NewReport()
	rep.Warnf(validate.CodeMissingField, "revenue.items[0].unitPrice", "required field is zero")

	return &projection.Result{
		ProjectID: "demo",
		Period:    period.Period{ConstructionYears: 1, OperationYears: 2},
		Tables:    map[string]*projection.Table{projection.TableCashFlow: tbl},
		Report:    rep,
	}
}

func TestMarkdownTables(t *testing.T) {
	out := Markdown(sampleResult())

	assert.Contains(t, out, "# demo feasibility projection")
	assert.Contains(t, out, "## Project cash flow")
	assert.Contains(t, out, "| No. | Item | Total | C1 | 1 | 2 |")
	assert.Contains(t, out, "| 3 | Net cash flow | 150.00 | -100.00 | 120.45 |  |")
	// balance rows have no total
	assert.Contains(t, out, "| 4 | Cumulative |  | -100.00 | 20.45 | 20.45 |")
	assert.Contains(t, out, "## Financial indicators")
	assert.Contains(t, out, "MISSING_FIELD")
}

func TestHTMLDecoratesCells(t *testing.T) {
	out, err := HTML(sampleResult())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<article class="feasibility-report">`))
	assert.Contains(t, out, `data-row="3"`)
	assert.Contains(t, out, `class="num neg"`)
	assert.Contains(t, out, `class="num"`)
	assert.Contains(t, out, "<h2")
}
