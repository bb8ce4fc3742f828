package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestStepsFlag bool

var suggestCmd = &cobra.Command{
	Use:   "suggest <title>",
	Short: "Get AI advice for a task title",
	Long: `Get short actionable advice for a task without adding it to the
list. Use --steps for a step-by-step breakdown instead.

When the AI backend is unreachable, deterministic fallbacks answer
instead, so this command always produces something.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Gateway == nil {
			return fmt.Errorf("suggestion gateway not initialized")
		}

		title := strings.Join(args, " ")
		ctx := cmd.Context()

		if suggestStepsFlag {
			for i, step := range Gateway.SuggestSteps(ctx, title) {
				fmt.Printf("%d. %s\n", i+1, step)
			}
			return nil
		}

		fmt.Printf("Category: %s\n", Gateway.SuggestCategory(ctx, title))
		fmt.Printf("Priority: %s\n", Gateway.SuggestPriority(ctx, title))
		fmt.Printf("Deadline: %s\n", Gateway.SuggestDeadline(ctx, title).Format("2006-01-02 15:04"))
		fmt.Printf("Advice:   %s\n", Gateway.Advise(ctx, title))
		return nil
	},
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestStepsFlag, "steps", false, "suggest a step-by-step breakdown")
	rootCmd.AddCommand(suggestCmd)
}
