// Package mcp provides an MCP (Model Context Protocol) server that exposes
// taskwise functionality as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/internal/reminder"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// Server wraps taskwise services and exposes them as MCP tools.
type Server struct {
	server  *gomcp.Server
	taskMgr core.TaskManager
	gateway core.SuggestionGateway
	monitor *reminder.Monitor
}

// NewServer creates a new MCP server with the given service dependencies.
// monitor may be nil when reminders are disabled.
func NewServer(taskMgr core.TaskManager, gateway core.SuggestionGateway, monitor *reminder.Monitor, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		taskMgr: taskMgr,
		gateway: gateway,
		monitor: monitor,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskwise", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type addTaskInput struct {
	Title    string `json:"title" jsonschema:"required,the task title"`
	Priority string `json:"priority,omitempty" jsonschema:"optional priority (High, Medium, Low); defaults to Medium"`
	Deadline string `json:"deadline,omitempty" jsonschema:"optional deadline in RFC 3339 or YYYY-MM-DD format"`
}

type taskOutput struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Completed  bool     `json:"completed"`
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	Deadline   string   `json:"deadline,omitempty"`
	Suggestion string   `json:"ai_suggestion,omitempty"`
	Steps      []string `json:"ai_steps,omitempty"`
	Created    string   `json:"created"`
}

type listTasksInput struct {
	Completed *bool  `json:"completed,omitempty" jsonschema:"filter by completion status"`
	Category  string `json:"category,omitempty" jsonschema:"filter by category (Work, Personal, Shopping, Health, Other)"`
	Priority  string `json:"priority,omitempty" jsonschema:"filter by priority (High, Medium, Low)"`
	Sort      string `json:"sort,omitempty" jsonschema:"sort order (created, deadline, priority); defaults to created"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the unique task identifier (e.g. T-00042)"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type suggestStepsInput struct {
	Title string `json:"title" jsonschema:"required,the task title to break down"`
}

type suggestStepsOutput struct {
	Steps []string `json:"steps"`
}

type getRemindersInput struct{}

type reminderOutput struct {
	TaskID   string `json:"task_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	DaysLeft int    `json:"days_left"`
}

type getRemindersOutput struct {
	Reminders []reminderOutput `json:"reminders"`
	Count     int              `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Add a new task. The category is inferred from the title; priority defaults to Medium.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks with optional completion, category, and priority filters.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "complete_task",
		Description: "Toggle a task's completion status by ID.",
	}, s.handleCompleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "suggest_steps",
		Description: "Generate up to five actionable steps for completing a task.",
	}, s.handleSuggestSteps)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_reminders",
		Description: "Return tasks that are due tomorrow, due today, or overdue.",
	}, s.handleGetReminders)
}

// --- Tool handlers ---

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), taskOutput{}, nil
	}

	opts := core.AddOpts{}
	if input.Priority != "" {
		opts.Priority = models.NormalizePriority(input.Priority)
	}
	if input.Deadline != "" {
		deadline, err := parseDeadline(input.Deadline)
		if err != nil {
			return errorResult(fmt.Sprintf("parsing deadline: %s", err)), taskOutput{}, nil
		}
		opts.Deadline = &deadline
	}

	task, err := s.taskMgr.Add(input.Title, opts)
	if err != nil {
		return errorResult(fmt.Sprintf("adding task: %s", err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	filter := core.TaskFilter{Completed: input.Completed}
	if input.Category != "" {
		filter.Category = models.NormalizeCategory(input.Category)
	}
	if input.Priority != "" {
		filter.Priority = models.NormalizePriority(input.Priority)
	}

	order := core.SortOrder(input.Sort)
	switch order {
	case "":
		order = core.SortCreated
	case core.SortCreated, core.SortDeadline, core.SortPriority:
	default:
		return errorResult(fmt.Sprintf("invalid sort %q: must be one of created, deadline, priority", input.Sort)), listTasksOutput{}, nil
	}

	tasks := s.taskMgr.List(filter, order)
	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, t := range tasks {
		out.Tasks[i] = taskToOutput(t)
	}

	return nil, out, nil
}

func (s *Server) handleCompleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), messageOutput{}, nil
	}

	found, err := s.taskMgr.ToggleComplete(input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("toggling task %s: %s", input.TaskID, err)), messageOutput{}, nil
	}
	if !found {
		return errorResult(fmt.Sprintf("task not found: %s", input.TaskID)), messageOutput{}, nil
	}

	task, _ := s.taskMgr.Get(input.TaskID)
	state := "open"
	if task.Completed {
		state = "completed"
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %s is now %s", input.TaskID, state)}, nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), messageOutput{}, nil
	}

	found, err := s.taskMgr.Delete(input.TaskID)
	if err != nil {
		return errorResult(fmt.Sprintf("deleting task %s: %s", input.TaskID, err)), messageOutput{}, nil
	}
	if !found {
		return errorResult(fmt.Sprintf("task not found: %s", input.TaskID)), messageOutput{}, nil
	}

	return nil, messageOutput{Message: fmt.Sprintf("task %s deleted", input.TaskID)}, nil
}

func (s *Server) handleSuggestSteps(ctx context.Context, _ *gomcp.CallToolRequest, input suggestStepsInput) (*gomcp.CallToolResult, suggestStepsOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), suggestStepsOutput{}, nil
	}

	return nil, suggestStepsOutput{Steps: s.gateway.SuggestSteps(ctx, input.Title)}, nil
}

func (s *Server) handleGetReminders(_ context.Context, _ *gomcp.CallToolRequest, _ getRemindersInput) (*gomcp.CallToolResult, getRemindersOutput, error) {
	if s.monitor == nil {
		return errorResult("reminder monitor not available"), getRemindersOutput{}, nil
	}

	notices := s.monitor.Pending()
	out := getRemindersOutput{
		Reminders: make([]reminderOutput, len(notices)),
		Count:     len(notices),
	}
	for i, n := range notices {
		out.Reminders[i] = reminderOutput{
			TaskID:   n.TaskID,
			Title:    n.Title,
			Message:  n.Message,
			DaysLeft: n.DaysLeft,
		}
	}

	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t models.Task) taskOutput {
	out := taskOutput{
		ID:         t.ID,
		Title:      t.Title,
		Completed:  t.Completed,
		Category:   string(t.Category),
		Priority:   string(t.Priority),
		Suggestion: t.Suggestion,
		Steps:      t.Steps,
		Created:    t.Created.Format(time.RFC3339),
	}
	if t.Deadline != nil {
		out.Deadline = t.Deadline.Format(time.RFC3339)
	}
	return out
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
