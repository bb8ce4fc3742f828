package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/core"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Get AI insights across the whole task list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil || Gateway == nil {
			return fmt.Errorf("services not initialized")
		}

		tasks := TaskMgr.List(core.TaskFilter{}, core.SortCreated)
		fmt.Println(Gateway.AdviseTasks(cmd.Context(), tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
