// Package mcp exposes the importer as an MCP server over stdio. Hosts call
// convert_json with a payload and receive the scene tree, or a tool error
// carrying a user facing message.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	figmaimporter "github.com/kataras/figma-importer"
)

// Server implements the MCP server for the importer.
type Server struct {
	mcpServer *server.MCPServer
	opts      figmaimporter.Options
	logger    *slog.Logger // may be nil
}

// NewServer creates a new MCP server converting payloads with opts as the
// base options. Tool arguments override the conversion flags per call.
// A nil logger disables tool call logging.
func NewServer(opts figmaimporter.Options, logger *slog.Logger) *Server {
	s := &Server{opts: opts, logger: logger}

	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		serverOpts = append(serverOpts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("figma-importer", figmaimporter.Version, serverOpts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: convertJSONTool(), Handler: s.handleConvertJSON},
		server.ServerTool{Tool: detectDialectTool(), Handler: s.handleDetectDialect},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
