package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/server"
	"github.com/steipete/peekaboo-go/internal/version"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"mcp"},
	Short:   "Start an MCP server exposing peekaboo tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the peekaboo
commands as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for Claude Code / MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  peekaboo serve
  peekaboo serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	srv, err := server.New(version.Version)
	if err != nil {
		return err
	}
	return srv.Serve(server.Config{Transport: transport, Port: port})
}
