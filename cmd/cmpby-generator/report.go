package main

import (
	"fmt"
	"io"
	"strings"

	"cmpby-generator/internal/diagnostic"
	"cmpby-generator/internal/gen"
)

// summary counts what a run reported.
type summary struct {
	definitions int
	failed      int
	errors      int
	warnings    int
}

// report prints the diagnostics of every result and counts them. Nil
// results, left by units that failed to generate, are skipped.
func report(w io.Writer, units []*gen.Unit, results []*gen.Result) summary {
	var s summary

	for i, res := range results {
		if res == nil {
			continue
		}

		s.definitions += len(units[i].Definitions)
		s.failed += res.Failed
		s.errors += len(res.Diagnostics.Errors)
		s.warnings += len(res.Diagnostics.Warnings)

		for _, bucket := range [][]diagnostic.Diagnostic{
			res.Diagnostics.Errors, res.Diagnostics.Warnings, res.Diagnostics.Infos,
		} {
			for _, d := range bucket {
				fmt.Fprintln(w, formatDiagnostic(d))
			}
		}
	}

	return s
}

// formatDiagnostic renders "pos: severity [code] Type: message".
func formatDiagnostic(d diagnostic.Diagnostic) string {
	var sb strings.Builder

	if d.Pos.IsValid() {
		sb.WriteString(pathStyle.Render(d.Pos.String()) + ": ")
	}

	sb.WriteString(severityStyle(d.Severity).Render(d.Severity.String()))

	if d.Code != "" {
		sb.WriteString(" " + codeStyle.Render("["+d.Code+"]"))
	}

	if d.Type != "" {
		sb.WriteString(" " + d.Type + ":")
	}

	sb.WriteString(" " + d.Message)

	return sb.String()
}

func (s summary) String() string {
	out := fmt.Sprintf("%d definitions", s.definitions)

	switch {
	case s.failed > 0:
		out += ", " + errorStyle.Render(fmt.Sprintf("%d failed", s.failed))
	case s.errors == 0:
		out += ", " + successStyle.Render("ok")
	}

	if s.warnings > 0 {
		out += ", " + warningStyle.Render(fmt.Sprintf("%d warnings", s.warnings))
	}

	return out
}
