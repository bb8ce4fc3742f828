package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

var (
	listAllFlag      bool
	listDoneFlag     bool
	listCategoryFlag string
	listPriorityFlag string
	listDueFlag      string
	listSortFlag     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks. By default only open tasks are shown; use --done for
completed tasks or --all for both. Filters compose: --category Work
--priority High lists only high-priority work tasks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		filter := core.TaskFilter{}
		if !listAllFlag {
			completed := listDoneFlag
			filter.Completed = &completed
		}
		if listCategoryFlag != "" {
			filter.Category = models.NormalizeCategory(listCategoryFlag)
		}
		if listPriorityFlag != "" {
			filter.Priority = models.NormalizePriority(listPriorityFlag)
		}
		if listDueFlag != "" {
			day, err := parseDeadlineArg(listDueFlag)
			if err != nil {
				return err
			}
			filter.DueOn = &day
		}

		sortFlag := listSortFlag
		if sortFlag == "" {
			sortFlag = Settings.DefaultSort
		}
		order := core.SortOrder(sortFlag)
		switch order {
		case "", core.SortCreated, core.SortDeadline, core.SortPriority:
		default:
			return fmt.Errorf("unknown sort %q: use created, deadline, or priority", sortFlag)
		}

		tasks := TaskMgr.List(filter, order)
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		now := time.Now()
		for _, t := range tasks {
			status := "[ ]"
			if t.Completed {
				status = "[x]"
			}
			line := fmt.Sprintf("%s %s  %-8s %-9s %s", status, t.ID, t.Priority, t.Category, t.Title)
			if t.Deadline != nil {
				suffix := t.Deadline.Format("2006-01-02")
				if !t.Completed && t.Deadline.Before(now) {
					suffix += " (overdue)"
				}
				line += "  due " + suffix
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d task(s)\n", len(tasks))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAllFlag, "all", "a", false, "include completed tasks")
	listCmd.Flags().BoolVar(&listDoneFlag, "done", false, "show only completed tasks")
	listCmd.Flags().StringVarP(&listCategoryFlag, "category", "c", "", "filter by category")
	listCmd.Flags().StringVarP(&listPriorityFlag, "priority", "p", "", "filter by priority")
	listCmd.Flags().StringVar(&listDueFlag, "due", "", "filter by due date (YYYY-MM-DD or natural language)")
	listCmd.Flags().StringVarP(&listSortFlag, "sort", "s", "", "sort order (created, deadline, priority)")
	rootCmd.AddCommand(listCmd)
}
