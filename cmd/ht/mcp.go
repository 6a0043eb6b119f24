package main

import (
	"github.com/spf13/cobra"

	"github.com/pbaille/ht/internal/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the tracker MCP server (stdio)",
		Long: `Start a Model Context Protocol (MCP) server that exposes the headache
tracker as MCP tools via STDIO: log_entry, get_today_entry, list_entries,
update_entry, delete_entry and get_stats.

Example:

  ht mcp --db ht.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			return mcp.NewTrackerMCPServer(s).Start()
		},
	}
}
