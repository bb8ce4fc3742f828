package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/core"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Base path:            %s\n", BasePath)
		fmt.Printf("Notifications:        %v (every %s)\n", Settings.Notifications.Enabled, Settings.Notifications.Interval)
		fmt.Printf("AI base URL:          %s\n", Settings.AI.BaseURL)
		fmt.Printf("AI model:             %s\n", Settings.AI.Model)
		if Settings.AI.APIKey != "" {
			fmt.Println("AI API key:           (set)")
		} else {
			fmt.Println("AI API key:           (not set)")
		}
		fmt.Printf("Server address:       %s\n", Settings.Server.Addr)
		fmt.Printf("Default sort:         %s\n", Settings.DefaultSort)
		return nil
	},
}

var configNotificationsCmd = &cobra.Command{
	Use:   "notifications <on|off>",
	Short: "Enable or disable reminder notifications",
	Long: `Enable or disable reminder notifications. While off, the reminder
monitor keeps tracking deadlines but suppresses delivery, so nothing is
missed when notifications are switched back on.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "on":
			Settings.Notifications.Enabled = true
		case "off":
			Settings.Notifications.Enabled = false
		default:
			return fmt.Errorf("invalid argument %q: use on or off", args[0])
		}

		if err := core.SaveSettings(BasePath, Settings); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		if Settings.Notifications.Enabled {
			fmt.Println("Notifications enabled.")
		} else {
			fmt.Println("Notifications disabled.")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configNotificationsCmd)
	rootCmd.AddCommand(configCmd)
}
