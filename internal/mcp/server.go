// Package mcp exposes the tracker over the Model Context Protocol, so the
// entry log and its statistics are reachable as tools from MCP clients.
package mcp

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pbaille/ht/internal/store"
)

const serverVersion = "0.1.0"

// TrackerMCPServer wraps an MCP stdio server backed by the entry store.
type TrackerMCPServer struct {
	mcpServer *server.MCPServer
	store     *store.Store
}

// NewTrackerMCPServer builds the MCP server and registers all tracker tools.
func NewTrackerMCPServer(s *store.Store) *TrackerMCPServer {
	mcpServer := server.NewMCPServer(
		"Headache Tracker MCP Server",
		serverVersion,
		server.WithLogging(),
		server.WithRecovery(),
	)

	registerTools(mcpServer, s)

	return &TrackerMCPServer{mcpServer: mcpServer, store: s}
}

// Start runs the stdio event loop, blocking until stdin closes.
func (t *TrackerMCPServer) Start() error {
	// Log to stderr so the JSON-RPC stream on stdout stays clean.
	fmt.Fprintln(os.Stderr, "Headache tracker MCP server listening on STDIN/STDOUT")
	return server.ServeStdio(t.mcpServer)
}
