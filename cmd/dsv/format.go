package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/akrisanov/docstring-verifier/internal/report"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	hintColor    = color.New(color.FgHiBlack)
	pathColor    = color.New(color.Bold)
	ruleColor    = color.New(color.FgHiBlack)
)

func severityPrinter(severity string) *color.Color {
	switch severity {
	case "error":
		return errorColor
	case "warning":
		return warningColor
	case "info":
		return infoColor
	default:
		return hintColor
	}
}

// writeHuman renders the report for terminals: one line per finding in the
// file:line:column style editors know how to jump to, then a summary.
func writeHuman(w io.Writer, doc *report.Report) error {
	for _, file := range doc.Files {
		if file.Error != nil {
			if _, err := fmt.Fprintf(w, "%s: %s (%s)\n",
				pathColor.Sprint(file.Path),
				errorColor.Sprint(file.Error.Message),
				file.Error.Code); err != nil {
				return err
			}
			continue
		}

		for _, d := range file.Diagnostics {
			// Human output is 1-based in both coordinates.
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n",
				pathColor.Sprint(file.Path),
				d.Range.Start.Line+1,
				d.Range.Start.Character+1,
				severityPrinter(d.Severity).Sprint(d.Severity),
				d.Message,
				ruleColor.Sprintf("[%s]", d.RuleID)); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if doc.Summary.Diagnostics == 0 && doc.Summary.Failed == 0 {
		_, err := fmt.Fprintf(w, "Checked %d file(s): no issues found.\n", doc.Summary.Files)
		return err
	}

	_, err := fmt.Fprintf(w, "Checked %d file(s): %d issue(s)", doc.Summary.Files, doc.Summary.Diagnostics)
	if err != nil {
		return err
	}
	for _, severity := range []string{"error", "warning", "info", "hint"} {
		if n := doc.Summary.BySeverity[severity]; n > 0 {
			if _, err := fmt.Fprintf(w, ", %d %s", n, severity); err != nil {
				return err
			}
		}
	}
	if doc.Summary.Failed > 0 {
		if _, err := fmt.Fprintf(w, ", %d file(s) failed", doc.Summary.Failed); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
