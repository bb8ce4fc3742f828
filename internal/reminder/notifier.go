// Package reminder watches the task list for approaching deadlines and
// raises notices through a pluggable notifier.
package reminder

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
)

// Notifier delivers a single reminder notice to the user.
type Notifier interface {
	Notify(title, body string) error
}

// DesktopNotifier raises native desktop notifications.
type DesktopNotifier struct{}

// NewDesktopNotifier creates a desktop-backed notifier.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// Notify shows a desktop notification.
func (n *DesktopNotifier) Notify(title, body string) error {
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}

// ConsoleNotifier writes notices to the log. It backs the monitor in
// headless environments where a desktop notification cannot land.
type ConsoleNotifier struct {
	logger *log.Logger
}

// NewConsoleNotifier creates a log-backed notifier.
func NewConsoleNotifier(logger *log.Logger) *ConsoleNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsoleNotifier{logger: logger}
}

// Notify logs the notice at info level.
func (n *ConsoleNotifier) Notify(title, body string) error {
	n.logger.Info(title, "reminder", body)
	return nil
}
