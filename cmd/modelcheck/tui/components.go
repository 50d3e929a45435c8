package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marshallshelly/modelcheck/pkg/schema"
)

// IssueItem represents an issue in the list
type IssueItem struct {
	Issue schema.Issue
}

func (i IssueItem) FilterValue() string { return i.Issue.File + " " + i.Issue.Message }
func (i IssueItem) Title() string {
	return fmt.Sprintf("%s %s", FormatSeverity(i.Issue.Severity), i.Issue.Message)
}
func (i IssueItem) Description() string {
	return mutedStyle.Render(i.Issue.Origin.String())
}

// IssueItemDelegate renders issue list items
type IssueItemDelegate struct{}

func (d IssueItemDelegate) Height() int                             { return 2 }
func (d IssueItemDelegate) Spacing() int                            { return 1 }
func (d IssueItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d IssueItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(IssueItem)
	if !ok {
		return
	}

	var s string
	if index == m.Index() {
		s = selectedItemStyle.Render("▸ " + i.Title() + "\n  " + i.Description())
	} else {
		s = unselectedItemStyle.Render("  " + i.Title() + "\n  " + i.Description())
	}

	_, _ = fmt.Fprint(w, s)
}

// DetailView shows one issue with the source line it points at
type DetailView struct {
	Issue   schema.Issue
	Excerpt string
}

// View renders the detail view
func (d DetailView) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(strings.ToUpper(string(d.Issue.Severity))))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(d.Issue.Origin.String()))
	b.WriteString("\n\n")
	b.WriteString(d.Issue.Message)

	if d.Excerpt != "" {
		b.WriteString("\n")
		b.WriteString(codeStyle.Render(fmt.Sprintf("%4d │ %s", d.Issue.Line, d.Excerpt)))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(FormatKey("esc", "back") + " • " + FormatKey("q", "quit")))

	return boxStyle.Render(b.String())
}

// SeverityFilter narrows the list to one severity
type SeverityFilter int

const (
	FilterAll SeverityFilter = iota
	FilterErrors
	FilterWarnings
)

// Next cycles through the filters
func (f SeverityFilter) Next() SeverityFilter {
	return (f + 1) % 3
}

// Match reports whether issue passes the filter
func (f SeverityFilter) Match(issue schema.Issue) bool {
	switch f {
	case FilterErrors:
		return issue.Severity == schema.SeverityError
	case FilterWarnings:
		return issue.Severity == schema.SeverityWarning
	default:
		return true
	}
}

func (f SeverityFilter) String() string {
	switch f {
	case FilterErrors:
		return "errors"
	case FilterWarnings:
		return "warnings"
	default:
		return "all"
	}
}
