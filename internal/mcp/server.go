// Package mcp exposes the rover photo API as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/marsdash/internal/nasa"
)

// Version is set via ldflags at build time.
var Version = "dev"

// PhotoSource fetches decoded photos for a rover and sol.
type PhotoSource interface {
	Photos(ctx context.Context, rover string, sol int) ([]nasa.Photo, error)
}

// Server wraps an MCP server that exposes the rover photo tools.
type Server struct {
	photos     PhotoSource
	rovers     []string
	defaultSol int
	mcp        *server.MCPServer
}

// NewServer creates a new MCP server over the given photo source.
func NewServer(photos PhotoSource, rovers []string, defaultSol int) *Server {
	s := &Server{
		photos:     photos,
		rovers:     rovers,
		defaultSol: defaultSol,
	}

	s.mcp = server.NewMCPServer(
		"marsdash",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listRoversTool, s.handleListRovers)
	s.mcp.AddTool(getRoverPhotosTool, s.handleGetRoverPhotos)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
