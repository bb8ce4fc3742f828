// Package internal provides the App struct that wires all components of
// TaskWise together and initializes the CLI layer.
package internal

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/taskwise-ai/taskwise/internal/cli"
	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/internal/reminder"
	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/suggest"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// App holds all service dependencies for TaskWise.
type App struct {
	BasePath string
	Settings models.Settings

	// Storage layer
	TaskStore storage.TaskStore

	// Core services
	TaskMgr  core.TaskManager
	Enricher *core.Enricher

	// Suggestion gateway
	Gateway *suggest.Gateway

	// Reminders
	Notifier reminder.Notifier
	Monitor  *reminder.Monitor
}

// NewApp creates and wires all components of TaskWise. basePath is the
// directory holding tasks.json and config.yaml (typically ~/.taskwise).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}
	logger := log.Default()

	// --- Configuration ---
	settings, err := core.LoadSettings(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	app.Settings = settings

	// --- Storage layer ---
	app.TaskStore = storage.NewFileTaskStore(basePath, logger)

	// --- Core services ---
	app.TaskMgr, err = core.NewTaskManager(app.TaskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	// --- Suggestion gateway ---
	client := suggest.NewClient(settings.AI)
	app.Gateway = suggest.NewGateway(client, logger)
	app.Enricher = core.NewEnricher(app.Gateway, app.TaskMgr)

	// --- Reminders ---
	app.Notifier = reminder.NewDesktopNotifier()
	app.Monitor = reminder.NewMonitor(
		app.TaskMgr,
		app.Notifier,
		settings.Notifications.Interval,
		func() bool { return cli.Settings.Notifications.Enabled },
		logger,
	)

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Settings = settings
	cli.TaskMgr = app.TaskMgr
	cli.Gateway = app.Gateway
	cli.Enricher = app.Enricher
	cli.Monitor = app.Monitor

	return app, nil
}
