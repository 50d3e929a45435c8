package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/modelcheck/cmd/modelcheck/output"
	"github.com/marshallshelly/modelcheck/cmd/modelcheck/tui"
	"github.com/marshallshelly/modelcheck/pkg/report"
	"github.com/marshallshelly/modelcheck/pkg/schema"
)

func runCheck(cmd *cobra.Command, opts *options, args []string) error {
	out := output.NewPrinter(cmd.OutOrStdout())

	if len(args) == 0 || args[0] == "" {
		out.Error("Usage: modelcheck <path>")
		out.Muted("  path: Python file or directory containing SQLModel definitions")
		return errInvocation
	}
	path := args[0]

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return err
	}

	rep, err := report.New(cfg, logger).Check(cmd.Context(), path)
	if err != nil {
		if errors.Is(err, schema.ErrPathNotFound) {
			out.Error("Error: Path not found: %s", path)
			return errInvocation
		}
		return err
	}

	if format == report.FormatText {
		out.Report(rep)
	} else if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
		return err
	}

	if opts.interactive && len(rep.Issues) > 0 {
		if err := tui.RunIssuesUI(rep); err != nil {
			return err
		}
	}

	if rep.ExitCode() != 0 {
		return errIssuesFound
	}
	return nil
}
