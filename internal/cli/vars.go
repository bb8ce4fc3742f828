package cli

import (
	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/internal/reminder"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Settings models.Settings

	TaskMgr  core.TaskManager
	Gateway  core.SuggestionGateway
	Enricher *core.Enricher
	Monitor  *reminder.Monitor
)
