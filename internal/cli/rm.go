package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		id := args[0]
		found, err := TaskMgr.Delete(id)
		if err != nil {
			return fmt.Errorf("deleting task %s: %w", id, err)
		}
		if !found {
			return fmt.Errorf("task not found: %s", id)
		}

		fmt.Printf("Deleted task %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
