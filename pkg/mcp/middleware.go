package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// loggingMiddleware logs every tool call with its duration and outcome.
// Only installed when the server has a logger.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)

			attrs := []any{
				"tool", req.Params.Name,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			switch {
			case err != nil:
				s.logger.Error("tool call failed", append(attrs, "error", err)...)
			case result != nil && result.IsError:
				s.logger.Warn("tool call rejected", attrs...)
			default:
				s.logger.Info("tool call", attrs...)
			}

			return result, err
		}
	}
}
