// Package mcpserver exposes the model checker as a Model Context Protocol
// tool.
package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/marshallshelly/modelcheck/pkg/config"
	"github.com/marshallshelly/modelcheck/pkg/report"
	"github.com/marshallshelly/modelcheck/pkg/schema"
)

// ToolValidateModels is the name of the checking tool.
const ToolValidateModels = "validate_models"

// Server serves the checker over MCP.
type Server struct {
	checker *report.Checker
	version string
	logger  *slog.Logger
}

// New creates a Server checking with cfg.
func New(cfg *config.Config, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		checker: report.New(cfg, logger),
		version: version,
		logger:  logger,
	}
}

// MCPServer builds the protocol server with every tool registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(
		"modelcheck",
		s.version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	srv.AddTool(mcp.NewTool(ToolValidateModels,
		mcp.WithDescription("Check SQLModel-style model definitions in a Python file or directory for missing primary keys, unknown foreign-key tables and asymmetric relationships."),
		mcp.WithString("path", mcp.Required(), mcp.Description("File or directory containing model definitions.")),
		mcp.WithString("format", mcp.Description("Report format: json (default), text or yaml.")),
	), s.HandleValidateModels)

	return srv
}

// HandleValidateModels runs one check. Invocation problems are returned as
// error results; findings are part of a successful result.
func (s *Server) HandleValidateModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strings.TrimSpace(mcp.ParseString(request, "path", ""))
	formatName := strings.ToLower(strings.TrimSpace(mcp.ParseString(request, "format", string(report.FormatJSON))))

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rep, err := s.checker.Check(ctx, path)
	switch {
	case errors.Is(err, schema.ErrNoPath):
		return mcp.NewToolResultError("path is required"), nil
	case errors.Is(err, schema.ErrPathNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("Path not found: %s", path)), nil
	case err != nil:
		s.logger.Error("check failed", "path", path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Debug("tool call complete", "tool", ToolValidateModels, "path", path, "issues", len(rep.Issues))

	var buf bytes.Buffer
	if err := report.Write(&buf, rep, format); err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// ServeStdio serves requests on stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCPServer())
}
