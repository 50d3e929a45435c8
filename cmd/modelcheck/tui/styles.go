package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/modelcheck/pkg/schema"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#F3F4F6")
	colorBorder  = lipgloss.Color("#4B5563")

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// List styles
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				PaddingLeft(2)

	unselectedItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(4)

	// Box styles
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	// Severity indicator styles
	severityErrorStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				SetString("✗")

	severityWarningStyle = lipgloss.NewStyle().
				Foreground(colorWarning).
				SetString("⚠")

	// Help styles
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Source excerpt
	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A78BFA")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1).
			MarginTop(1)
)

// FormatSeverity returns a styled severity indicator
func FormatSeverity(severity schema.Severity) string {
	switch severity {
	case schema.SeverityError:
		return severityErrorStyle.Render() + " " + dangerStyle.Render(string(severity))
	case schema.SeverityWarning:
		return severityWarningStyle.Render() + " " + warningStyle.Render(string(severity))
	default:
		return mutedStyle.Render(string(severity))
	}
}

// FormatCounts renders the error and warning totals
func FormatCounts(errors, warnings int) string {
	if errors == 0 && warnings == 0 {
		return successStyle.Render("✓ No issues found")
	}
	return dangerStyle.Render(fmt.Sprintf("%d error(s)", errors)) +
		mutedStyle.Render(" • ") +
		warningStyle.Render(fmt.Sprintf("%d warning(s)", warnings))
}

// FormatKey formats a help key
func FormatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + mutedStyle.Render(description)
}
