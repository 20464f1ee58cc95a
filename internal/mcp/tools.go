package mcp

import "github.com/mark3labs/mcp-go/mcp"

// defaultPhotoLimit caps the photos listed by get_rover_photos.
const defaultPhotoLimit = 25

// listRoversTool defines the list_rovers MCP tool.
var listRoversTool = mcp.NewTool("list_rovers",
	mcp.WithDescription("List the Mars rovers the dashboard offers."),
)

// getRoverPhotosTool defines the get_rover_photos MCP tool.
var getRoverPhotosTool = mcp.NewTool("get_rover_photos",
	mcp.WithDescription("Get the photos a Mars rover took on a given sol, with the rover's launch date, landing date and status."),
	mcp.WithString("rover",
		mcp.Required(),
		mcp.Description("Rover name, for example Curiosity"),
	),
	mcp.WithNumber("sol",
		mcp.Description("Martian day since landing (default 1000)"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of photos to list (default 25)"),
	),
)
