package report

import (
	"fmt"
	"strings"

	"project_feasibility/pkg/core/projection"
)

// Markdown renders every table of the result in presentation order,
// followed by the indicators and the validation issues.
func Markdown(r *projection.Result) string {
	var sb strings.Builder

	title := r.ProjectID
	if title == "" {
		title = "Project"
	}
	sb.WriteString(fmt.Sprintf("# %s feasibility projection\n\n", title))

	for _, t := range r.OrderedTables() {
		writeTable(&sb, t)
	}
	writeIndicators(&sb, r)
	writeIssues(&sb, r)

	return sb.String()
}

// TableMarkdown renders a single table.
func TableMarkdown(t *projection.Table) string {
	var sb strings.Builder
	writeTable(&sb, t)
	return sb.String()
}

// YearHeaders labels the horizon columns: C1..Cn for construction years,
// 1..m for operation years.
func YearHeaders(construction, operation int) []string {
	out := make([]string, 0, construction+operation)
	for i := 1; i <= construction; i++ {
		out = append(out, fmt.Sprintf("C%d", i))
	}
	for i := 1; i <= operation; i++ {
		out = append(out, fmt.Sprintf("%d", i))
	}
	return out
}

func writeTable(sb *strings.Builder, t *projection.Table) {
	years := YearHeaders(t.ConstructionYears, t.OperationYears)

	sb.WriteString(fmt.Sprintf("## %s\n\n", t.Title))

	header := append([]string{"No.", "Item", "Total"}, years...)
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")

	align := []string{"---", "---"}
	for range header[2:] {
		align = append(align, "---:")
	}
	sb.WriteString("| " + strings.Join(align, " | ") + " |\n")

	for _, row := range t.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.ID, escapeCell(row.Label))
		if row.Total != nil {
			cells = append(cells, FormatAmount(*row.Total))
		} else {
			cells = append(cells, "")
		}
		for i := range years {
			cells = append(cells, FormatAmount(row.Values.At(i+1)))
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	sb.WriteString("\n")
}

func writeIndicators(sb *strings.Builder, r *projection.Result) {
	ind := r.Indicators
	rows := [][2]string{
		{"Total investment", FormatAmount(ind.TotalInvestment)},
		{"Construction investment", FormatAmount(ind.ConstructionInvestment)},
		{"Construction-period interest", FormatAmount(ind.ConstructionInterest)},
		{"Working capital", FormatAmount(ind.WorkingCapital)},
		{"Equity", FormatAmount(ind.Equity)},
		{"Loan principal", FormatAmount(ind.LoanPrincipal)},
		{"Total revenue", FormatAmount(ind.TotalRevenue)},
		{"Total net profit", FormatAmount(ind.TotalNetProfit)},
		{"ROI", FormatRatio(ind.ROI)},
		{"ROE", FormatRatio(ind.ROE)},
		{"Investment tax rate", FormatRatio(ind.InvestmentTaxRate)},
		{"Average ICR", Truncate2(ind.AverageICR).StringFixed(2)},
		{"Average DSCR", Truncate2(ind.AverageDSCR).StringFixed(2)},
		{"IRR (pre-tax)", FormatRate(ind.IRRPreTax)},
		{"IRR (post-tax)", FormatRate(ind.IRRPostTax)},
		{"IRR (equity)", FormatRate(ind.IRREquity)},
		{fmt.Sprintf("NPV (pre-tax, i=%s)", FormatRatio(ind.DiscountRate)), FormatAmount(ind.NPVPreTax)},
		{fmt.Sprintf("NPV (post-tax, i=%s)", FormatRatio(ind.DiscountRate)), FormatAmount(ind.NPVPostTax)},
		{"Static payback (pre-tax)", FormatPayback(ind.PaybackPreTax)},
		{"Static payback (post-tax)", FormatPayback(ind.PaybackPostTax)},
		{"Dynamic payback (pre-tax)", FormatPayback(ind.DynamicPaybackPreTax)},
		{"Dynamic payback (post-tax)", FormatPayback(ind.DynamicPaybackPostTax)},
	}

	sb.WriteString("## Financial indicators\n\n")
	sb.WriteString("| Indicator | Value |\n| --- | ---: |\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", row[0], row[1]))
	}
	sb.WriteString("\n")
}

func writeIssues(sb *strings.Builder, r *projection.Result) {
	if r.Report == nil || len(r.Report.Issues) == 0 {
		return
	}
	sb.WriteString("## Data issues\n\n")
	sb.WriteString("| Code | Severity | Field | Row | Message |\n| --- | --- | --- | --- | --- |\n")
	for _, is := range r.Report.Issues {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			is.Code, is.Severity, escapeCell(is.Field), is.RowID, escapeCell(is.Message)))
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
