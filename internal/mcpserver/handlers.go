package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/giantswarm/uitest/internal/formatting"
	"github.com/giantswarm/uitest/internal/report"
)

// handleListTests returns the selected tests as JSON.
func (s *Server) handleListTests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fixtures, err := s.base.Suite.Discover(request.GetString("filter", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to discover tests: %v", err)), nil
	}

	var buf bytes.Buffer
	f := formatting.NewFormatter(formatting.Options{Format: formatting.FormatJSON, Output: &buf})
	if err := f.FormatTests(fixtures); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format tests: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// handleRunTests runs the selected tests and returns their results. Failing
// tests are part of a successful tool result; only a run that could not
// produce results is a tool error.
func (s *Server) handleRunTests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := resultFormat(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := s.run(ctx, request.GetString("filter", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Test run failed: %v", err)), nil
	}
	return formatResults(doc, format)
}

// handleGetResults returns the results of the most recent run.
func (s *Server) handleGetResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := resultFormat(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, ok := s.lastResults()
	if !ok {
		return mcp.NewToolResultError("No test run has completed yet"), nil
	}
	return formatResults(doc, format)
}

func resultFormat(request mcp.CallToolRequest) (formatting.OutputFormat, error) {
	return formatting.ParseFormat(request.GetString("format", string(formatting.FormatJSON)))
}

func formatResults(doc report.Document, format formatting.OutputFormat) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	f := formatting.NewFormatter(formatting.Options{Format: format, Output: &buf})
	if err := f.FormatResults(doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format results: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
