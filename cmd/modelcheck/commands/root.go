package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/modelcheck/pkg/config"
)

// Version is the modelcheck release.
const Version = "0.1.0"

// errIssuesFound makes the process exit 1 after a report with errors has
// already been printed.
var errIssuesFound = errors.New("issues found")

// errInvocation makes the process exit 1 after a usage or path message has
// already been printed.
var errInvocation = errors.New("invalid invocation")

// options holds the global flags.
type options struct {
	configPath  string
	format      string
	verbose     bool
	interactive bool
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "modelcheck <path>",
		Short: "Static checks for SQLModel table definitions",
		Long: `modelcheck parses SQLModel-style model classes in Python source without
executing them and reports structural problems.

Checks:
  - Table models without a primary key (error)
  - Foreign keys referencing a table no scanned model declares (warning)
  - back_populates without a matching relationship on the target (error)

A directory is scanned recursively and all of its models are checked together.
"modelcheck mcp" starts the MCP server; pass a directory named mcp as ./mcp.`,
		Example: `  modelcheck app/models.py
  modelcheck app/                      # Check every .py file below app/
  modelcheck app/ --format json        # Machine-readable report
  modelcheck app/ -i                   # Browse the issues interactively`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file (default "+config.DefaultFileName+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging on stderr")
	rootCmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or yaml")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Browse the issues in a terminal UI")

	rootCmd.AddCommand(newMCPCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) && !errors.Is(err, errInvocation) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

// newLogger returns a text logger on w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the configured or default configuration file.
func loadConfig(opts *options, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded",
		"file", opts.configPath,
		"base_classes", cfg.BaseClasses,
		"extensions", cfg.Extensions)
	return cfg, nil
}
