package schema

import (
	"fmt"
	"strings"
)

// Severity classifies an issue.
type Severity string

const (
	// SeverityError blocks a clean exit status.
	SeverityError Severity = "error"
	// SeverityWarning is advisory.
	SeverityWarning Severity = "warning"
)

// Issue is one finding produced while checking models.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
	Origin   `yaml:",inline"`
}

// NewError creates an error issue at origin.
func NewError(origin Origin, format string, args ...any) Issue {
	return Issue{Severity: SeverityError, Message: fmt.Sprintf(format, args...), Origin: origin}
}

// NewWarning creates a warning issue at origin.
func NewWarning(origin Origin, format string, args ...any) Issue {
	return Issue{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Origin: origin}
}

// IsError reports whether the issue has error severity.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// String formats the issue as "SEVERITY: path:line - message".
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s - %s", strings.ToUpper(string(i.Severity)), i.Origin, i.Message)
}

// CountBySeverity returns the number of errors and warnings in issues.
func CountBySeverity(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}
