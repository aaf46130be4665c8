package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcdickinson/jsdocgen/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [jsdoc.json]",
	Short: "Serve the generated reference over MCP on stdio",
	Long: `Build the reference once and expose every entry as a jsdoc://LONGNAME
resource, together with the resolve_type and list_entries tools.`,
	Example: `  jsdocgen mcp jsdoc.json
  jsdocgen mcp --package-version 1.4.x jsdoc.json.zst`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	m, cfg, err := loadModel(args)
	if err != nil {
		slog.Error("failed to build documentation", "error", err)
		os.Exit(1)
	}

	version := m.Version
	if version == "" {
		version = "0.0.0"
	}
	s := mcp.NewServer(m, cfg.LinkConfig(), version)
	slog.Debug("serving reference over MCP", "entries", len(m.Elements))
	if err := s.Run(); err != nil {
		slog.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}
