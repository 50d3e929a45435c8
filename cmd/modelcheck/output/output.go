package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/modelcheck/pkg/report"
	"github.com/marshallshelly/modelcheck/pkg/schema"
)

var (
	// Color styles for terminal output
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Printer writes styled messages to one writer. Styles are rendered for the
// writer's terminal capabilities, so a non-terminal writer gets plain text.
type Printer struct {
	w io.Writer

	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a Printer for w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(colorSuccess).Bold(true),
		warning: r.NewStyle().Foreground(colorWarning).Bold(true),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, p.err.Render(fmt.Sprintf(format, args...)))
}

// Muted prints a muted message
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

// Issue prints one issue with its severity highlighted
func (p *Printer) Issue(issue schema.Issue) {
	label := fmt.Sprintf("%s:", severityLabel(issue.Severity))
	style := p.warning
	if issue.IsError() {
		style = p.err
	}
	fmt.Fprintf(p.w, "%s %s - %s\n", style.Render(label), issue.Origin, issue.Message)
}

// Report prints every issue, the success line when there are none and the
// summary.
func (p *Printer) Report(rep *report.Report) {
	for _, issue := range rep.Issues {
		p.Issue(issue)
	}
	if len(rep.Issues) == 0 {
		fmt.Fprintln(p.w, p.success.Render(report.SuccessLine))
	}

	fmt.Fprintln(p.w)
	summary := report.Summary(rep)
	switch {
	case rep.Errors() > 0:
		fmt.Fprintln(p.w, p.err.Render(summary))
	case rep.Warnings() > 0:
		fmt.Fprintln(p.w, p.warning.Render(summary))
	default:
		fmt.Fprintln(p.w, p.success.Render(summary))
	}
}

func severityLabel(severity schema.Severity) string {
	switch severity {
	case schema.SeverityError:
		return "ERROR"
	case schema.SeverityWarning:
		return "WARNING"
	default:
		return string(severity)
	}
}
