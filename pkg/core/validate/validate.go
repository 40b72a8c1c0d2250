// Package validate checks a project configuration and collects data problems
// into a report that travels with the computed result.
package validate

import (
	"fmt"
	"strings"
)

// Code classifies a data problem.
type Code string

const (
	CodeEmpty         Code = "EMPTY"
	CodeMissingField  Code = "MISSING_FIELD"
	CodeInvalidVAT    Code = "INVALID_VAT"
	CodeInvalidAmount Code = "INVALID_AMOUNT"
	CodeNotConverged  Code = "NOT_CONVERGED"
)

// Severity tells whether the computed value is still trustworthy.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one reported problem. Field is a dotted path into the
// configuration, RowID the output row it affects, if any.
type Issue struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	RowID    string   `json:"rowId,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.RowID != "" {
		return fmt.Sprintf("[%s] %s (row %s): %s", i.Code, i.Field, i.RowID, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Code, i.Field, i.Message)
}

// Report collects issues in the order they were found.
type Report struct {
	Issues []Issue `json:"issues"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Issues: []Issue{}}
}

// Add records an issue.
func (r *Report) Add(code Code, sev Severity, field, rowID, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Code:     code,
		Severity: sev,
		Field:    field,
		RowID:    rowID,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Errorf records an error-severity issue.
func (r *Report) Errorf(code Code, field, format string, args ...interface{}) {
	r.Add(code, SeverityError, field, "", format, args...)
}

// Warnf records a warning-severity issue.
func (r *Report) Warnf(code Code, field, format string, args ...interface{}) {
	r.Add(code, SeverityWarning, field, "", format, args...)
}

// Merge appends the issues of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// HasErrors reports whether any error-severity issue was recorded.
func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByCode returns the issues with the given code.
func (r *Report) ByCode(code Code) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}

// Summary renders one issue per line.
func (r *Report) Summary() string {
	lines := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		lines = append(lines, i.String())
	}
	return strings.Join(lines, "\n")
}
