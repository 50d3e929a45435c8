package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/marshallshelly/modelcheck/pkg/schema"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SuccessLine is printed in text output when no issues were found.
const SuccessLine = "✓ No issues found"

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// document is the structured rendering of a report.
type document struct {
	Path     string         `json:"path" yaml:"path"`
	Files    int            `json:"files" yaml:"files"`
	Models   int            `json:"models" yaml:"models"`
	Errors   int            `json:"errors" yaml:"errors"`
	Warnings int            `json:"warnings" yaml:"warnings"`
	Issues   []schema.Issue `json:"issues" yaml:"issues"`
}

func newDocument(rep *Report) document {
	issues := rep.Issues
	if issues == nil {
		issues = []schema.Issue{}
	}
	return document{
		Path:     rep.Path,
		Files:    rep.Files,
		Models:   rep.Models,
		Errors:   rep.Errors(),
		Warnings: rep.Warnings(),
		Issues:   issues,
	}
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(rep)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(rep)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteText renders one line per issue, the success line when there are no
// issues, and the summary.
func WriteText(w io.Writer, rep *Report) error {
	for _, issue := range rep.Issues {
		if _, err := fmt.Fprintln(w, issue.String()); err != nil {
			return err
		}
	}
	if len(rep.Issues) == 0 {
		if _, err := fmt.Fprintln(w, SuccessLine); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%s\n", Summary(rep))
	return err
}

// Summary returns the error and warning counts as a sentence.
func Summary(rep *Report) string {
	return fmt.Sprintf("Found %d error(s) and %d warning(s)", rep.Errors(), rep.Warnings())
}
