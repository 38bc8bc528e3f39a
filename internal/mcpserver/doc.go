// Package mcpserver exposes the UI test suite to AI assistants through the
// Model Context Protocol.
//
// The server speaks MCP over stdio and offers three tools:
//
//   - list_tests: the discovered tests, optionally filtered
//   - run_tests: run the selected tests and return their results
//   - get_results: the results of the most recent run
//
// Results are rendered with the formatting package; JSON is the default and
// yaml, table and console are available through the "format" argument.
//
// # Usage
//
//	srv := mcpserver.New(*cfg, version)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
package mcpserver
