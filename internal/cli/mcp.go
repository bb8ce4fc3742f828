package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	twmcp "github.com/taskwise-ai/taskwise/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the TaskWise MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TaskWise MCP server on stdio",
	Long: `Start the TaskWise MCP server on stdio transport.

The server exposes TaskWise functionality as MCP tools that AI assistants
can call: add_task, list_tasks, complete_task, delete_task, suggest_steps,
get_reminders.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil || Gateway == nil {
			return fmt.Errorf("services not initialized")
		}

		srv := twmcp.NewServer(TaskMgr, Gateway, Monitor, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
