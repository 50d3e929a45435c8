package commands

import (
	"github.com/spf13/cobra"

	"github.com/marshallshelly/modelcheck/cmd/modelcheck/mcpserver"
)

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the checker as an MCP tool on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing one tool:

  validate_models(path, format?)   Check a file or directory; format is
                                   json (default), text or yaml.

Logs are written to stderr so they never mix with protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd, opts)
		},
	}
}

func runMCP(cmd *cobra.Command, opts *options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return err
	}

	logger.Debug("serving mcp on stdio", "version", Version)
	return mcpserver.New(cfg, Version, logger).ServeStdio()
}
