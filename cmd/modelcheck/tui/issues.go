package tui

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marshallshelly/modelcheck/pkg/report"
)

// IssuesMode represents the current mode of the issue browser
type IssuesMode int

const (
	ModeList IssuesMode = iota
	ModeDetail
)

// IssuesModel is the Bubbletea model for browsing a report
type IssuesModel struct {
	mode   IssuesMode
	report *report.Report
	filter SeverityFilter
	list   list.Model
	detail DetailView
	width  int
	height int
}

// NewIssuesModel creates a new issue browser for rep
func NewIssuesModel(rep *report.Report) IssuesModel {
	delegate := IssueItemDelegate{}

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Model Issues: " + rep.Path
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	m := IssuesModel{
		mode:   ModeList,
		report: rep,
		filter: FilterAll,
		list:   l,
	}
	m.list.SetItems(m.items())
	return m
}

func (m IssuesModel) items() []list.Item {
	items := make([]list.Item, 0, len(m.report.Issues))
	for _, issue := range m.report.Issues {
		if m.filter.Match(issue) {
			items = append(items, IssueItem{Issue: issue})
		}
	}
	return items
}

// Init initializes the model
func (m IssuesModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

type excerptLoadedMsg struct {
	file    string
	line    int
	excerpt string
}

// loadExcerptCmd reads the given 1-based line of file. Failures leave the
// excerpt empty.
func loadExcerptCmd(file string, line int) tea.Cmd {
	return func() tea.Msg {
		msg := excerptLoadedMsg{file: file, line: line}
		if line < 1 {
			return msg
		}

		f, err := os.Open(file)
		if err != nil {
			return msg
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for n := 1; scanner.Scan(); n++ {
			if n == line {
				msg.excerpt = scanner.Text()
				break
			}
		}
		return msg
	}
}

// Update handles messages
func (m IssuesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case excerptLoadedMsg:
		if m.mode == ModeDetail && m.detail.Issue.File == msg.file && m.detail.Issue.Line == msg.line {
			m.detail.Excerpt = msg.excerpt
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeList:
			if m.list.FilterState() == list.Filtering {
				break
			}
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit

			case "tab":
				m.filter = m.filter.Next()
				m.list.SetItems(m.items())
				m.list.ResetSelected()
				return m, nil

			case "enter", " ":
				item, ok := m.list.SelectedItem().(IssueItem)
				if !ok {
					return m, nil
				}
				m.detail = DetailView{Issue: item.Issue}
				m.mode = ModeDetail
				return m, loadExcerptCmd(item.Issue.File, item.Issue.Line)
			}

		case ModeDetail:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "backspace", "enter":
				m.mode = ModeList
				return m, nil
			}
			return m, nil
		}
	}

	if m.mode == ModeList {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI
func (m IssuesModel) View() string {
	switch m.mode {
	case ModeList:
		status := FormatCounts(m.report.Errors(), m.report.Warnings()) +
			mutedStyle.Render(fmt.Sprintf(" • showing %s", m.filter))
		help := helpStyle.Render(
			FormatKey("↑/↓", "navigate") + " • " +
				FormatKey("enter", "details") + " • " +
				FormatKey("tab", "severity") + " • " +
				FormatKey("/", "filter") + " • " +
				FormatKey("q", "quit"),
		)
		return lipgloss.JoinVertical(lipgloss.Left,
			m.list.View(),
			status,
			help,
		)

	case ModeDetail:
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			lipgloss.Center,
			m.detail.View(),
		)
	}

	return "Unknown mode"
}

// RunIssuesUI starts the interactive issue browser
func RunIssuesUI(rep *report.Report) error {
	p := tea.NewProgram(NewIssuesModel(rep))
	_, err := p.Run()
	return err
}
