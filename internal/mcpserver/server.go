package mcpserver

import (
	"context"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/singleflight"

	"github.com/giantswarm/uitest/internal/app"
	"github.com/giantswarm/uitest/internal/report"
)

// Server exposes the UI test suite as MCP tools over stdio.
//
// Runs are serialized: the orchestrator watches the process wide log stream
// for asynchronous failures, so two runs at once would blame each other's
// errors. Identical run requests arriving while one is in flight share its
// result.
type Server struct {
	base      app.Config
	mcpServer *server.MCPServer

	runMu  sync.Mutex
	flight singleflight.Group

	mu         sync.RWMutex
	last       report.Document
	hasResults bool
}

// New creates the server. base is copied for every run, with the filter of
// the request applied. The run summary is never written to stdout, which
// carries the protocol.
func New(base app.Config, version string) *Server {
	base.Output = io.Discard
	base.Progress = false
	if base.Suite == nil {
		base.Suite = app.DemoSuite()
	}

	s := &Server{
		base: base,
		mcpServer: server.NewMCPServer(
			"uitest",
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdin/stdout until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	listTests := mcp.NewTool("list_tests",
		mcp.WithDescription("List the UI tests of the suite, optionally narrowed by a filter"),
		mcp.WithString("filter",
			mcp.Description("Case-insensitive substring of the full test name (Fixture.Test)"),
		),
	)
	s.mcpServer.AddTool(listTests, s.handleListTests)

	runTests := mcp.NewTool("run_tests",
		mcp.WithDescription("Run the UI tests selected by filter and return the results"),
		mcp.WithString("filter",
			mcp.Description("Case-insensitive substring of the full test name (Fixture.Test)"),
		),
		mcp.WithString("format",
			mcp.Description("Result format: json (default), yaml, table or console"),
		),
	)
	s.mcpServer.AddTool(runTests, s.handleRunTests)

	getResults := mcp.NewTool("get_results",
		mcp.WithDescription("Return the results of the most recent run"),
		mcp.WithString("format",
			mcp.Description("Result format: json (default), yaml, table or console"),
		),
	)
	s.mcpServer.AddTool(getResults, s.handleGetResults)
}

func (s *Server) run(ctx context.Context, filter string) (report.Document, error) {
	v, err, _ := s.flight.Do(filter, func() (interface{}, error) {
		s.runMu.Lock()
		defer s.runMu.Unlock()

		cfg := s.base
		if filter != "" {
			cfg.Filter = filter
		}
		application, err := app.NewApplication(&cfg)
		if err != nil {
			return nil, err
		}

		_, runErr := application.Run(ctx)
		doc, ok := application.LastReport()
		if !ok {
			return nil, runErr
		}

		s.mu.Lock()
		s.last, s.hasResults = doc, true
		s.mu.Unlock()
		return doc, nil
	})
	if err != nil {
		return report.Document{}, err
	}
	return v.(report.Document), nil
}

func (s *Server) lastResults() (report.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.hasResults
}
