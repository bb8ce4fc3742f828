package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

var (
	addPriorityFlag string
	addDeadlineFlag string
	addNoAIFlag     bool
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task with the given title.

The category is inferred from the title immediately. Unless --no-ai is set,
AI suggestions (priority, deadline, steps, advice) are fetched and applied
before the command returns. The --deadline flag accepts natural language
("tomorrow at 5pm", "next friday") as well as YYYY-MM-DD.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		title := strings.Join(args, " ")
		opts := core.AddOpts{}
		if addPriorityFlag != "" {
			opts.Priority = models.NormalizePriority(addPriorityFlag)
		}
		if addDeadlineFlag != "" {
			deadline, err := parseDeadlineArg(addDeadlineFlag)
			if err != nil {
				return err
			}
			opts.Deadline = &deadline
		}

		task, err := TaskMgr.Add(title, opts)
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Added task %s\n", task.ID)
		printTask(task)

		if addNoAIFlag || Enricher == nil {
			return nil
		}

		fmt.Println("\nFetching AI suggestions...")
		Enricher.Enrich(cmd.Context(), task)
		if enriched, ok := TaskMgr.Get(task.ID); ok {
			fmt.Println()
			printTask(enriched)
		}
		return nil
	},
}

// parseDeadlineArg accepts natural-language dates alongside the plain
// YYYY-MM-DD form.
func parseDeadlineArg(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if t, ok := core.NewDateParser().ParseDeadline(s, time.Now()); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("could not parse deadline %q: use YYYY-MM-DD or a phrase like \"tomorrow at 5pm\"", s)
}

func printTask(t models.Task) {
	status := "[ ]"
	if t.Completed {
		status = "[x]"
	}
	fmt.Printf("  %s %s  %s\n", status, t.ID, t.Title)
	fmt.Printf("      Category: %-10s Priority: %s\n", t.Category, t.Priority)
	if t.Deadline != nil {
		fmt.Printf("      Deadline: %s\n", t.Deadline.Format("2006-01-02 15:04"))
	}
	if t.Suggestion != "" {
		fmt.Printf("      Advice:   %s\n", t.Suggestion)
	}
	for i, step := range t.Steps {
		fmt.Printf("      Step %d:   %s\n", i+1, step)
	}
}

func init() {
	addCmd.Flags().StringVarP(&addPriorityFlag, "priority", "p", "", "priority (High, Medium, Low)")
	addCmd.Flags().StringVarP(&addDeadlineFlag, "deadline", "d", "", "deadline (YYYY-MM-DD or natural language)")
	addCmd.Flags().BoolVar(&addNoAIFlag, "no-ai", false, "skip AI enrichment")
	rootCmd.AddCommand(addCmd)
}
