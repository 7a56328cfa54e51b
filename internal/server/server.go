// Package server exposes the engine's operations as MCP tools so agents
// can drive the desktop over stdio or streamable HTTP.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/steipete/peekaboo-go/internal/engine"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around one shared engine. Tool calls are
// serialized: the UI is a single shared resource and interleaved input
// synthesis corrupts both interactions.
type Server struct {
	engine   *engine.Engine
	engineMu sync.Mutex
	mcp      *mcpserver.MCPServer
}

// New creates and configures an MCP server with all peekaboo tools.
func New(version string) (*Server, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine: engine.New(provider),
	}
	s.mcp = mcpserver.NewMCPServer(
		"peekaboo",
		version,
	)
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// defaultWaitTimeout bounds wait calls without an explicit timeout.
const defaultWaitTimeout = 5 * time.Second

func (s *Server) registerTools() {
	// see
	s.mcp.AddTool(
		mcp.NewTool("see",
			mcp.WithDescription("Capture the UI state of a window: builds an element catalog with stable IDs (B1, T2, ...) usable as targets in later click/type/scroll/wait calls. Returns the session ID."),
			mcp.WithString("app", mcp.Description("Application name (fuzzy matched)")),
			mcp.WithString("window", mcp.Description("Window title substring")),
			mcp.WithNumber("window-id", mcp.Description("System window ID")),
			mcp.WithString("session", mcp.Description("Existing session ID to refresh")),
			mcp.WithBoolean("menubar", mcp.Description("Include the application menu bar")),
			mcp.WithBoolean("annotate", mcp.Description("Capture a screenshot and write an annotated copy")),
		),
		s.handleSee,
	)

	// click
	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Click a UI element by catalog ID (e.g. 'B3'), text query, or 'x,y' coordinates"),
			mcp.WithString("target", mcp.Description("Element ID, text query, or 'x,y'"), mcp.Required()),
			mcp.WithString("session", mcp.Description("Session ID from a previous see call")),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle")),
			mcp.WithBoolean("double", mcp.Description("Double-click")),
			mcp.WithBoolean("exact", mcp.Description("Match text queries exactly instead of by substring")),
		),
		s.handleClick,
	)

	// type
	s.mcp.AddTool(
		mcp.NewTool("type",
			mcp.WithDescription("Type text, optionally clicking a target element first to focus it"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithString("target", mcp.Description("Element to focus before typing")),
			mcp.WithString("session", mcp.Description("Session ID from a previous see call")),
		),
		s.handleType,
	)

	// scroll
	s.mcp.AddTool(
		mcp.NewTool("scroll",
			mcp.WithDescription("Scroll at a UI element or screen point"),
			mcp.WithString("target", mcp.Description("Element ID, text query, or 'x,y'"), mcp.Required()),
			mcp.WithString("direction", mcp.Description("Scroll direction: up, down, left, right"), mcp.Required()),
			mcp.WithNumber("amount", mcp.Description("Scroll ticks (default: 3)")),
			mcp.WithString("session", mcp.Description("Session ID from a previous see call")),
		),
		s.handleScroll,
	)

	// wait
	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait until a target element becomes resolvable. Reports found: false on timeout rather than erroring."),
			mcp.WithString("target", mcp.Description("Element ID, text query, or 'x,y'"), mcp.Required()),
			mcp.WithNumber("timeout", mcp.Description("Max seconds to wait (default: 5)")),
			mcp.WithString("session", mcp.Description("Session ID from a previous see call")),
		),
		s.handleWait,
	)

	// window
	s.mcp.AddTool(
		mcp.NewTool("window",
			mcp.WithDescription("Locate a window by app, title, index, or system window ID"),
			mcp.WithString("app", mcp.Description("Application name (fuzzy matched)")),
			mcp.WithString("title", mcp.Description("Window title substring")),
			mcp.WithNumber("index", mcp.Description("Window index within the app (requires app)")),
			mcp.WithNumber("window-id", mcp.Description("System window ID")),
		),
		s.handleWindow,
	)

	// dialog
	s.mcp.AddTool(
		mcp.NewTool("dialog",
			mcp.WithDescription("Find the active dialog or sheet, optionally by exact title"),
			mcp.WithString("title", mcp.Description("Exact dialog title")),
		),
		s.handleDialog,
	)

	// list
	s.mcp.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("List on-screen windows with owner, title, bounds, and window ID"),
		),
		s.handleList,
	)

	// focus
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Bring an application or window to the foreground"),
			mcp.WithString("app", mcp.Description("Application name (fuzzy matched)")),
			mcp.WithString("title", mcp.Description("Window title substring")),
		),
		s.handleFocus,
	)
}
