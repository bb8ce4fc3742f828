package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion status",
	Long: `Toggle a task between open and completed. Completing an already
completed task reopens it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		id := args[0]
		found, err := TaskMgr.ToggleComplete(id)
		if err != nil {
			return fmt.Errorf("toggling task %s: %w", id, err)
		}
		if !found {
			return fmt.Errorf("task not found: %s", id)
		}

		task, _ := TaskMgr.Get(id)
		if task.Completed {
			fmt.Printf("Completed %s: %s\n", task.ID, task.Title)
		} else {
			fmt.Printf("Reopened %s: %s\n", task.ID, task.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
