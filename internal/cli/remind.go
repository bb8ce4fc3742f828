package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var remindWatchFlag bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Show or watch deadline reminders",
	Long: `Show tasks that are due tomorrow, due today, or overdue.

With --watch, keep running and raise a desktop notification whenever a
task crosses into a new reminder bucket. Notifications must be enabled
('tw config notifications on') for --watch to deliver anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Monitor == nil {
			return fmt.Errorf("reminder monitor not initialized")
		}

		if remindWatchFlag {
			fmt.Printf("Watching for reminders every %s. Press Ctrl+C to stop.\n", Settings.Notifications.Interval)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			Monitor.Run(ctx)
			return nil
		}

		notices := Monitor.Pending()
		if len(notices) == 0 {
			fmt.Println("Nothing due soon.")
			return nil
		}
		for _, n := range notices {
			fmt.Printf("%s  %s\n", n.TaskID, n.Message)
		}
		return nil
	},
}

func init() {
	remindCmd.Flags().BoolVarP(&remindWatchFlag, "watch", "w", false, "keep running and notify on new reminders")
	rootCmd.AddCommand(remindCmd)
}
