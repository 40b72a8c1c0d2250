package main

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"project_feasibility/pkg/core/projection"
	"project_feasibility/pkg/core/report"
	"project_feasibility/pkg/core/validate"
)

var (
	errorCode   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningCode = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// tableData converts one projection table into rows for pterm.
func tableData(t *projection.Table) pterm.TableData {
	years := report.YearHeaders(t.ConstructionYears, t.OperationYears)
	header := append([]string{"No.", "Item", "Total"}, years...)
	data := pterm.TableData{header}
	for _, row := range t.Rows {
		line := make([]string, 0, len(header))
		total := ""
		if row.Total != nil {
			total = report.FormatAmount(*row.Total)
		}
		line = append(line, row.ID, row.Label, total)
		for i := range years {
			line = append(line, report.FormatAmount(row.Values.At(i+1)))
		}
		data = append(data, line)
	}
	return data
}

// consoleTable renders one table under a section heading.
func consoleTable(t *projection.Table) (string, error) {
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithRightAlignment().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData(t)).
		Srender()
	if err != nil {
		return "", err
	}
	return pterm.DefaultSection.Sprint(t.Title) + rendered + "\n", nil
}

func consoleTables(res *projection.Result) (string, error) {
	var sb strings.Builder
	for _, t := range res.OrderedTables() {
		rendered, err := consoleTable(t)
		if err != nil {
			return "", err
		}
		sb.WriteString(rendered)
	}

	ind := res.Indicators
	sb.WriteString(pterm.DefaultSection.Sprint("Financial indicators"))
	rendered, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(pterm.TableData{
		{"Indicator", "Value"},
		{"Total investment", report.FormatAmount(ind.TotalInvestment)},
		{"Construction-period interest", report.FormatAmount(ind.ConstructionInterest)},
		{"ROI", report.FormatRatio(ind.ROI)},
		{"ROE", report.FormatRatio(ind.ROE)},
		{"IRR (pre-tax)", report.FormatRate(ind.IRRPreTax)},
		{"IRR (post-tax)", report.FormatRate(ind.IRRPostTax)},
		{"IRR (equity)", report.FormatRate(ind.IRREquity)},
		{"NPV (pre-tax)", report.FormatAmount(ind.NPVPreTax)},
		{"NPV (post-tax)", report.FormatAmount(ind.NPVPostTax)},
		{"Payback (pre-tax)", report.FormatPayback(ind.PaybackPreTax)},
		{"Payback (post-tax)", report.FormatPayback(ind.PaybackPostTax)},
	}).Srender()
	if err != nil {
		return "", err
	}
	sb.WriteString(rendered)
	return sb.String(), nil
}

func summaryTable(results []*projection.Result) pterm.TableData {
	data := pterm.TableData{{"Project", "Total investment", "IRR (post-tax)", "NPV (post-tax)", "Payback", "Issues"}}
	for _, res := range results {
		issues := 0
		if res.Report != nil {
			issues = len(res.Report.Issues)
		}
		ind := res.Indicators
		data = append(data, []string{
			res.ProjectID,
			report.FormatAmount(ind.TotalInvestment),
			report.FormatRate(ind.IRRPostTax),
			report.FormatAmount(ind.NPVPostTax),
			report.FormatPayback(ind.PaybackPostTax),
			strconv.Itoa(issues),
		})
	}
	return data
}

func issueLine(is validate.Issue) string {
	code := warningCode(string(is.Code))
	if is.Severity == validate.SeverityError {
		code = errorCode(string(is.Code))
	}
	line := code + " " + is.Field
	if is.RowID != "" {
		line += " (row " + is.RowID + ")"
	}
	return line + ": " + is.Message
}

func printIssues(rep *validate.Report) {
	if rep == nil || len(rep.Issues) == 0 {
		return
	}
	pterm.Warning.Printfln("%d data issue(s)", len(rep.Issues))
	for _, is := range rep.Issues {
		pterm.Println("  " + issueLine(is))
	}
}
