package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marshallshelly/modelcheck/pkg/report"
	"github.com/marshallshelly/modelcheck/pkg/schema"
)

func sampleReport(file string) *report.Report {
	return &report.Report{
		Path:   file,
		Files:  1,
		Models: 2,
		Issues: []schema.Issue{
			schema.NewError(schema.Origin{File: file, Line: 2}, "Table model 'Todo' has no primary key"),
			schema.NewWarning(schema.Origin{File: file, Line: 3}, "Foreign key 'owner_id' references unknown table 'ghost'"),
		},
	}
}

func TestIssuesModel_SeverityFilter(t *testing.T) {
	m := NewIssuesModel(sampleReport("models.py"))

	expected := []struct {
		filter SeverityFilter
		items  int
	}{
		{FilterErrors, 1},
		{FilterWarnings, 1},
		{FilterAll, 2},
	}

	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("expected 2 items initially, got %d", got)
	}

	for _, e := range expected {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(IssuesModel)

		if m.filter != e.filter {
			t.Errorf("expected filter %s, got %s", e.filter, m.filter)
		}
		if got := len(m.list.Items()); got != e.items {
			t.Errorf("filter %s: expected %d items, got %d", e.filter, e.items, got)
		}
	}
}

func TestIssuesModel_Detail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.py")
	content := "class Todo(SQLModel, table=True):\n    title: str\n    owner_id: int = Field(foreign_key=\"ghost.id\")\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewIssuesModel(sampleReport(path))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(IssuesModel)
	if m.mode != ModeDetail {
		t.Fatalf("expected detail mode, got %d", m.mode)
	}
	if cmd == nil {
		t.Fatal("expected excerpt command")
	}

	updated, _ = m.Update(cmd())
	m = updated.(IssuesModel)
	if m.detail.Excerpt != "    title: str" {
		t.Errorf("unexpected excerpt %q", m.detail.Excerpt)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(IssuesModel)
	if m.mode != ModeList {
		t.Errorf("expected list mode after esc, got %d", m.mode)
	}
}

func TestLoadExcerptCmd(t *testing.T) {
	msg := loadExcerptCmd(filepath.Join(t.TempDir(), "missing.py"), 1)().(excerptLoadedMsg)
	if msg.excerpt != "" {
		t.Errorf("expected empty excerpt for a missing file, got %q", msg.excerpt)
	}

	msg = loadExcerptCmd("models.py", 0)().(excerptLoadedMsg)
	if msg.excerpt != "" {
		t.Errorf("expected empty excerpt for unit-level issues, got %q", msg.excerpt)
	}
}
