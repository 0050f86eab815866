package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

// ServeStdio runs the server over stdin/stdout (for Cursor, Claude Desktop).
// Blocks until stdin closes. Logging must go to stderr in this mode.
func ServeStdio(s *server.MCPServer) error {
	log.Info().Msg("Starting MCP stdio transport")
	return server.ServeStdio(s)
}

// ServeSSE runs the server over HTTP with SSE streaming.
// Blocks until the listener fails.
func ServeSSE(s *server.MCPServer, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	baseURL := fmt.Sprintf("http://%s", addr)

	sseServer := server.NewSSEServer(s,
		server.WithBaseURL(baseURL),
	)

	log.Info().
		Str("addr", addr).
		Str("sse", baseURL+"/sse").
		Str("message", baseURL+"/message").
		Msg("Starting MCP SSE transport")

	return sseServer.Start(addr)
}
