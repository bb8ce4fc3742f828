package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

func TestConfigNotificationsToggle(t *testing.T) {
	origBasePath, origSettings := BasePath, Settings
	defer func() { BasePath, Settings = origBasePath, origSettings }()

	BasePath = t.TempDir()
	Settings = models.DefaultSettings()

	if err := configNotificationsCmd.RunE(configNotificationsCmd, []string{"off"}); err != nil {
		t.Fatalf("disabling notifications: %v", err)
	}
	if Settings.Notifications.Enabled {
		t.Error("expected notifications to be disabled")
	}
	if _, err := os.Stat(filepath.Join(BasePath, "config.yaml")); err != nil {
		t.Errorf("expected config.yaml to be written: %v", err)
	}

	if err := configNotificationsCmd.RunE(configNotificationsCmd, []string{"on"}); err != nil {
		t.Fatalf("enabling notifications: %v", err)
	}
	if !Settings.Notifications.Enabled {
		t.Error("expected notifications to be enabled")
	}
}

func TestConfigNotificationsInvalidArg(t *testing.T) {
	origBasePath, origSettings := BasePath, Settings
	defer func() { BasePath, Settings = origBasePath, origSettings }()
	BasePath = t.TempDir()

	if err := configNotificationsCmd.RunE(configNotificationsCmd, []string{"maybe"}); err == nil {
		t.Fatal("expected error for invalid argument")
	}
}
