package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

var (
	editTitleFlag         string
	editCategoryFlag      string
	editPriorityFlag      string
	editDeadlineFlag      string
	editClearDeadlineFlag bool
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a task's fields",
	Long: `Edit one or more fields of an existing task. Only the flags you
pass are changed; everything else is left as is. Use --clear-deadline to
remove a deadline entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		id := args[0]
		patch := models.TaskPatch{ClearDeadline: editClearDeadlineFlag}

		if cmd.Flags().Changed("title") {
			patch.Title = &editTitleFlag
		}
		if cmd.Flags().Changed("category") {
			c := models.NormalizeCategory(editCategoryFlag)
			patch.Category = &c
		}
		if cmd.Flags().Changed("priority") {
			p := models.NormalizePriority(editPriorityFlag)
			patch.Priority = &p
		}
		if cmd.Flags().Changed("deadline") {
			deadline, err := parseDeadlineArg(editDeadlineFlag)
			if err != nil {
				return err
			}
			patch.Deadline = &deadline
		}

		found, err := TaskMgr.Update(id, patch)
		if err != nil {
			return fmt.Errorf("updating task %s: %w", id, err)
		}
		if !found {
			return fmt.Errorf("task not found: %s", id)
		}

		task, _ := TaskMgr.Get(id)
		fmt.Printf("Updated task %s\n", id)
		printTask(task)
		return nil
	},
}

func registerEditFlags() {
	editCmd.Flags().StringVarP(&editTitleFlag, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editCategoryFlag, "category", "c", "", "new category (Work, Personal, Shopping, Health, Other)")
	editCmd.Flags().StringVarP(&editPriorityFlag, "priority", "p", "", "new priority (High, Medium, Low)")
	editCmd.Flags().StringVarP(&editDeadlineFlag, "deadline", "d", "", "new deadline (YYYY-MM-DD or natural language)")
	editCmd.Flags().BoolVar(&editClearDeadlineFlag, "clear-deadline", false, "remove the deadline")
}

func init() {
	registerEditFlags()
	rootCmd.AddCommand(editCmd)
}
