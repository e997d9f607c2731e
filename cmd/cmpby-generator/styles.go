package main

import (
	"github.com/charmbracelet/lipgloss"

	"cmpby-generator/internal/diagnostic"
)

// Color palette for diagnostics and summaries.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorInfo    = lipgloss.Color("#3B82F6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	codeStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

func severityStyle(s diagnostic.DiagnosticSeverity) lipgloss.Style {
	switch s {
	case diagnostic.DiagnosticError:
		return errorStyle
	case diagnostic.DiagnosticWarning:
		return warningStyle
	default:
		return infoStyle
	}
}
