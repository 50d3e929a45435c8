package output

import (
	"bytes"
	"testing"

	"github.com/marshallshelly/modelcheck/pkg/report"
	"github.com/marshallshelly/modelcheck/pkg/schema"
)

func TestPrinter_Report(t *testing.T) {
	tests := []struct {
		name     string
		report   *report.Report
		expected string
	}{
		{
			name:     "no issues",
			report:   &report.Report{Path: "."},
			expected: "✓ No issues found\n\nFound 0 error(s) and 0 warning(s)\n",
		},
		{
			name: "issues",
			report: &report.Report{
				Path: "models.py",
				Issues: []schema.Issue{
					schema.NewError(schema.Origin{File: "models.py", Line: 4}, "Table model 'Todo' has no primary key"),
					schema.NewWarning(schema.Origin{File: "models.py", Line: 6}, "Foreign key 'owner_id' references unknown table 'ghost'"),
				},
			},
			expected: "ERROR: models.py:4 - Table model 'Todo' has no primary key\n" +
				"WARNING: models.py:6 - Foreign key 'owner_id' references unknown table 'ghost'\n" +
				"\nFound 1 error(s) and 1 warning(s)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).Report(tt.report)

			if buf.String() != tt.expected {
				t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), tt.expected)
			}
		})
	}
}

func TestPrinter_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Error("Error: Path not found: %s", "missing")

	if buf.String() != "Error: Path not found: missing\n" {
		t.Errorf("expected unstyled output, got %q", buf.String())
	}
}
