// Package loader collects source units and extracts model records from them.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marshallshelly/modelcheck/pkg/config"
	"github.com/marshallshelly/modelcheck/pkg/schema"
	"github.com/marshallshelly/modelcheck/pkg/source"
)

// Unit is the result of loading one source file.
type Unit struct {
	Path   string
	Models []*schema.ModelRecord
	// Issue is set when the unit could not be read or parsed; Models is then empty.
	Issue *schema.Issue
}

// Loader reads, parses and extracts source units.
type Loader struct {
	cfg       *config.Config
	parser    *source.Parser
	extractor *Extractor
	logger    *slog.Logger
}

// New creates a Loader for cfg. A nil logger discards log output.
func New(cfg *config.Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		cfg:       cfg,
		parser:    source.NewParser(),
		extractor: NewExtractor(cfg),
		logger:    logger,
	}
}

// LoadPath loads a single file, or every matching file below a directory.
// A missing path returns an error wrapping schema.ErrPathNotFound.
func (l *Loader) LoadPath(ctx context.Context, path string) ([]Unit, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", schema.ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var files []string
	if info.IsDir() {
		files, err = l.Collect(path)
		if err != nil {
			return nil, err
		}
	} else {
		files = []string{path}
	}

	units := make([]Unit, 0, len(files))
	for _, file := range files {
		units = append(units, l.LoadFile(ctx, file))
	}
	return units, nil
}

// Collect walks root and returns the files with a configured extension in
// lexical order. Excluded and unreadable directories are skipped. Symlinks to
// regular files are included; symlinked directories are not descended.
func (l *Loader) Collect(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			l.logger.Debug("skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p != root && l.cfg.IsExcluded(d.Name()) {
				l.logger.Debug("skipping excluded directory", "path", p)
				return filepath.SkipDir
			}
			return nil
		}

		if !l.cfg.HasExtension(d.Name()) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Linked files are followed; linked directories are not.
			info, err := os.Stat(p)
			if err != nil || !info.Mode().IsRegular() {
				l.logger.Debug("skipping symlink", "path", p)
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// LoadFile reads and extracts one unit. Read and syntax failures are
// reported on the unit as a single error issue.
func (l *Loader) LoadFile(ctx context.Context, path string) Unit {
	unit := Unit{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		l.logger.Debug("failed to read unit", "path", path, "error", err)
		issue := schema.NewError(schema.Origin{File: path}, "Read error: %v", err)
		unit.Issue = &issue
		return unit
	}

	file, err := l.parser.Parse(ctx, path, content)
	if err != nil {
		l.logger.Debug("failed to parse unit", "path", path, "error", err)
		origin := schema.Origin{File: path}
		var syntaxErr *source.SyntaxError
		if errors.As(err, &syntaxErr) {
			origin.Line = syntaxErr.Line
		}
		issue := schema.NewError(origin, "Syntax error: %v", err)
		unit.Issue = &issue
		return unit
	}
	defer file.Close()

	unit.Models = l.extractor.Extract(file)
	l.logger.Debug("parsed unit", "path", path, "models", len(unit.Models))

	return unit
}
