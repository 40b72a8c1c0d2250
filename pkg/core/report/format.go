// Package report renders a projection result as Markdown or HTML tables.
//
// Amounts are presented with two decimals, truncated toward zero and never
// rounded. Zero amounts render as blank cells.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"project_feasibility/pkg/core/calc"
)

// Truncate2 drops everything past the second decimal.
//
// FORMULA: trunc(v × 100) / 100, toward zero
func Truncate2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Truncate(2)
}

// FormatAmount renders an amount for a table cell. Values that truncate to
// zero render as "".
func FormatAmount(v float64) string {
	d := Truncate2(v)
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

// FormatRatio renders a decimal ratio as a percentage with two decimals.
func FormatRatio(v float64) string {
	return Truncate2(v*100).StringFixed(2) + "%"
}

// FormatRate renders an optional rate; nil means no rate was found.
func FormatRate(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return FormatRatio(*v)
}

// FormatPayback renders a payback period in years. A period below one year
// that was never recovered has no outlay to measure and renders as "n/a".
func FormatPayback(p calc.Payback) string {
	if !p.Recovered && p.Years < 1 {
		return "n/a"
	}
	if !p.Recovered {
		return fmt.Sprintf("not recovered (>%s)", Truncate2(p.Years-1).String())
	}
	return Truncate2(p.Years).StringFixed(2)
}

// parseCell reads a rendered amount back. ok is false for non-numeric text.
func parseCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
