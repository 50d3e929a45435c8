// Package report runs a complete check over a path and renders the result.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marshallshelly/modelcheck/pkg/config"
	"github.com/marshallshelly/modelcheck/pkg/loader"
	"github.com/marshallshelly/modelcheck/pkg/registry"
	"github.com/marshallshelly/modelcheck/pkg/schema"
	"github.com/marshallshelly/modelcheck/pkg/validator"
)

// Report is the outcome of checking one path.
type Report struct {
	Path   string         `json:"path" yaml:"path"`
	Files  int            `json:"files" yaml:"files"`
	Models int            `json:"models" yaml:"models"`
	Issues []schema.Issue `json:"issues" yaml:"issues"`
}

// Errors returns the number of error issues.
func (r *Report) Errors() int {
	errors, _ := schema.CountBySeverity(r.Issues)
	return errors
}

// Warnings returns the number of warning issues.
func (r *Report) Warnings() int {
	_, warnings := schema.CountBySeverity(r.Issues)
	return warnings
}

// ExitCode returns 1 if the report contains an error, 0 otherwise.
func (r *Report) ExitCode() int {
	if r.Errors() > 0 {
		return 1
	}
	return 0
}

// Checker extracts every unit below a path and validates them together.
type Checker struct {
	loader *loader.Loader
	logger *slog.Logger
}

// New creates a Checker. A nil cfg uses the defaults and a nil logger
// discards log output.
func New(cfg *config.Config, logger *slog.Logger) *Checker {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{
		loader: loader.New(cfg, logger),
		logger: logger,
	}
}

// Check loads path and validates all of its models as one namespace.
// Invocation failures return schema.ErrNoPath or schema.ErrPathNotFound;
// everything found in the sources is reported as an issue.
func (c *Checker) Check(ctx context.Context, path string) (*Report, error) {
	if path == "" {
		return nil, schema.ErrNoPath
	}

	c.logger.Debug("checking models", "path", path)

	units, err := c.loader.LoadPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	reg := registry.NewRegistry()
	for _, unit := range units {
		reg.RegisterAll(unit.Models)
	}

	rep := &Report{
		Path:   path,
		Files:  len(units),
		Models: reg.Len(),
		Issues: orderByUnit(units, validator.Validate(reg)),
	}

	c.logger.Debug("check complete",
		"path", path,
		"files", rep.Files,
		"models", rep.Models,
		"errors", rep.Errors(),
		"warnings", rep.Warnings())

	return rep, nil
}

// orderByUnit groups issues by the unit they originate from, in unit order.
// A unit's own read or syntax issue comes before its validator issues, which
// keep their pass order.
func orderByUnit(units []loader.Unit, found []schema.Issue) []schema.Issue {
	index := make(map[string]int, len(units))
	for i, unit := range units {
		index[unit.Path] = i
	}

	buckets := make([][]schema.Issue, len(units))
	var orphans []schema.Issue
	for _, issue := range found {
		i, ok := index[issue.File]
		if !ok {
			orphans = append(orphans, issue)
			continue
		}
		buckets[i] = append(buckets[i], issue)
	}

	issues := make([]schema.Issue, 0, len(found)+len(units))
	for i, unit := range units {
		if unit.Issue != nil {
			issues = append(issues, *unit.Issue)
		}
		issues = append(issues, buckets[i]...)
	}
	return append(issues, orphans...)
}
