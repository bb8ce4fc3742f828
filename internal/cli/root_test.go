package cli

import (
	"testing"
)

func TestCommandRegistration(t *testing.T) {
	expected := []string{
		"add", "list", "done", "rm", "edit",
		"suggest", "insights", "remind", "dashboard",
		"serve", "mcp", "config", "version",
	}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected %q command to be registered on root", name)
		}
	}
}

func TestMCPSubcommands(t *testing.T) {
	found := false
	for _, cmd := range mcpCmd.Commands() {
		if cmd.Name() == "serve" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'serve' subcommand on 'mcp'")
	}
}

func TestConfigSubcommands(t *testing.T) {
	expected := []string{"show", "notifications"}
	subs := make(map[string]bool)
	for _, cmd := range configCmd.Commands() {
		subs[cmd.Name()] = true
	}
	for _, name := range expected {
		if !subs[name] {
			t.Errorf("expected subcommand %q on 'config', but it was not registered", name)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	origVersion, origCommit, origDate := appVersion, appCommit, appDate
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("1.2.3", "abc123", "2025-06-01")
	if appVersion != "1.2.3" || appCommit != "abc123" || appDate != "2025-06-01" {
		t.Errorf("version info not applied: %s %s %s", appVersion, appCommit, appDate)
	}
}
