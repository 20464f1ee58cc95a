package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/marsdash/internal/nasa"
)

// handleListRovers returns the configured rover names, one per line.
func (s *Server) handleListRovers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if len(s.rovers) == 0 {
		return mcp.NewToolResultText("No rovers configured."), nil
	}
	return mcp.NewToolResultText(strings.Join(s.rovers, "\n")), nil
}

// handleGetRoverPhotos fetches a rover's photos for one sol from the upstream.
func (s *Server) handleGetRoverPhotos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rover, err := request.RequireString("rover")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: rover"), nil
	}

	sol := request.GetInt("sol", s.defaultSol)
	if sol < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid sol %d: must not be negative", sol)), nil
	}
	limit := request.GetInt("limit", defaultPhotoLimit)
	if limit <= 0 {
		limit = defaultPhotoLimit
	}

	photos, err := s.photos.Photos(ctx, rover, sol)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching photos failed: %v", err)), nil
	}

	if len(photos) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No photos available for %s on sol %d.", rover, sol)), nil
	}

	return mcp.NewToolResultText(formatPhotos(rover, sol, photos, limit)), nil
}

// formatPhotos renders the rover header from the first photo followed by
// one line per photo.
func formatPhotos(rover string, sol int, photos []nasa.Photo, limit int) string {
	var sb strings.Builder
	info := photos[0].Rover
	sb.WriteString(fmt.Sprintf("%s, sol %d: %d photo(s)\n", rover, sol, len(photos)))
	sb.WriteString(fmt.Sprintf("Launch date: %s\n", info.LaunchDate))
	sb.WriteString(fmt.Sprintf("Landing date: %s\n", info.LandingDate))
	sb.WriteString(fmt.Sprintf("Status: %s\n", info.Status))

	sb.WriteString("\n")
	for i, p := range photos {
		if i == limit {
			sb.WriteString(fmt.Sprintf("... %d more\n", len(photos)-limit))
			break
		}
		line := fmt.Sprintf("- %s %s", p.EarthDate, p.ImgSrc)
		if p.Camera != nil && p.Camera.Name != "" {
			line += fmt.Sprintf(" (%s)", p.Camera.Name)
		}
		sb.WriteString(line + "\n")
	}

	return sb.String()
}
