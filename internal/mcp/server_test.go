package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/internal/reminder"
	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// --- Fake implementations ---

type memStore struct {
	data storage.Collection
}

func (s *memStore) Load() (storage.Collection, error) { return s.data, nil }
func (s *memStore) Save(c storage.Collection) error   { s.data = c; return nil }

func newTaskManager(t *testing.T) core.TaskManager {
	t.Helper()
	mgr, err := core.NewTaskManager(&memStore{data: storage.EmptyCollection()}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("creating task manager: %v", err)
	}
	return mgr
}

type fakeGateway struct {
	steps []string
}

func (f *fakeGateway) SuggestCategory(_ context.Context, title string) models.Category {
	return core.DetermineCategory(title)
}

func (f *fakeGateway) SuggestPriority(_ context.Context, title string) models.Priority {
	return core.FallbackPriority(title)
}

func (f *fakeGateway) SuggestDeadline(_ context.Context, _ string) time.Time {
	return time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC)
}

func (f *fakeGateway) SuggestSteps(_ context.Context, _ string) []string {
	return f.steps
}

func (f *fakeGateway) Advise(_ context.Context, _ string) string { return "advice" }

func (f *fakeGateway) AdviseTasks(_ context.Context, _ []models.Task) string { return "insights" }

type silentNotifier struct{}

func (silentNotifier) Notify(_, _ string) error { return nil }

// callTool is a helper that connects a client to the server and calls a tool.
func callTool(t *testing.T, srv *Server, toolName string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()

	ctx := context.Background()
	client := gomcp.NewClient(&gomcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	t1, t2 := gomcp.NewInMemoryTransports()

	// Connect server (non-blocking).
	go func() {
		_ = srv.MCPServer().Run(ctx, t1)
	}()

	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &gomcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("call tool %s: %v", toolName, err)
	}

	return result
}

func decodeResult(t *testing.T, result *gomcp.CallToolResult, out any) {
	t.Helper()
	text := extractText(result)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		if result.StructuredContent != nil {
			data, _ := json.Marshal(result.StructuredContent)
			if err2 := json.Unmarshal(data, out); err2 != nil {
				t.Fatalf("unmarshalling tool output: %v (text was: %s)", err, text)
			}
			return
		}
		t.Fatalf("unmarshalling tool output: %v (text was: %s)", err, text)
	}
}

// --- Tests ---

func TestAddTask(t *testing.T) {
	srv := NewServer(newTaskManager(t), &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "add_task", map[string]any{
		"title":    "Buy groceries",
		"deadline": "2025-06-01",
	})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out taskOutput
	decodeResult(t, result, &out)

	if out.ID != "T-00001" {
		t.Errorf("expected task ID T-00001, got %s", out.ID)
	}
	if out.Category != "Shopping" {
		t.Errorf("expected category Shopping, got %s", out.Category)
	}
	if out.Priority != "Medium" {
		t.Errorf("expected priority Medium, got %s", out.Priority)
	}
	if out.Deadline == "" {
		t.Error("expected a deadline on the created task")
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	srv := NewServer(newTaskManager(t), &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "add_task", map[string]any{"title": "   "})

	if !result.IsError {
		t.Fatal("expected error result for blank title")
	}
}

func TestListTasksFiltered(t *testing.T) {
	tm := newTaskManager(t)
	if _, err := tm.Add("prepare client pitch", core.AddOpts{Priority: models.PriorityHigh}); err != nil {
		t.Fatal(err)
	}
	if _, err := tm.Add("buy groceries", core.AddOpts{}); err != nil {
		t.Fatal(err)
	}
	srv := NewServer(tm, &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "list_tasks", map[string]any{"category": "Work"})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out listTasksOutput
	decodeResult(t, result, &out)

	if out.Count != 1 {
		t.Fatalf("expected 1 task, got %d", out.Count)
	}
	if out.Tasks[0].Title != "prepare client pitch" {
		t.Errorf("expected the work task, got %q", out.Tasks[0].Title)
	}
}

func TestListTasksInvalidSort(t *testing.T) {
	srv := NewServer(newTaskManager(t), &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "list_tasks", map[string]any{"sort": "alphabetical"})

	if !result.IsError {
		t.Fatal("expected error result for invalid sort")
	}
}

func TestCompleteTask(t *testing.T) {
	tm := newTaskManager(t)
	task, err := tm.Add("walk the dog", core.AddOpts{})
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(tm, &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "complete_task", map[string]any{"task_id": task.ID})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out messageOutput
	decodeResult(t, result, &out)
	if !strings.Contains(out.Message, "completed") {
		t.Errorf("expected completion message, got %q", out.Message)
	}

	stored, _ := tm.Get(task.ID)
	if !stored.Completed {
		t.Error("expected task to be completed in the store")
	}
}

func TestCompleteTaskNotFound(t *testing.T) {
	srv := NewServer(newTaskManager(t), &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "complete_task", map[string]any{"task_id": "T-99999"})

	if !result.IsError {
		t.Fatal("expected error result for unknown task")
	}
}

func TestDeleteTask(t *testing.T) {
	tm := newTaskManager(t)
	task, err := tm.Add("old chore", core.AddOpts{})
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(tm, &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "delete_task", map[string]any{"task_id": task.ID})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}
	if _, ok := tm.Get(task.ID); ok {
		t.Error("expected task to be gone from the store")
	}
}

func TestSuggestSteps(t *testing.T) {
	gw := &fakeGateway{steps: []string{"first", "second"}}
	srv := NewServer(newTaskManager(t), gw, nil, "test")

	result := callTool(t, srv, "suggest_steps", map[string]any{"title": "write the report"})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out suggestStepsOutput
	decodeResult(t, result, &out)
	if len(out.Steps) != 2 || out.Steps[0] != "first" {
		t.Errorf("unexpected steps: %v", out.Steps)
	}
}

func TestGetReminders(t *testing.T) {
	tm := newTaskManager(t)
	deadline := time.Now().Add(-2 * time.Hour)
	if _, err := tm.Add("pay invoice", core.AddOpts{Deadline: &deadline}); err != nil {
		t.Fatal(err)
	}
	monitor := reminder.NewMonitor(tm, silentNotifier{}, time.Minute, nil, log.New(io.Discard))
	srv := NewServer(tm, &fakeGateway{}, monitor, "test")

	result := callTool(t, srv, "get_reminders", map[string]any{})

	if result.IsError {
		t.Fatalf("expected success, got error: %s", extractText(result))
	}

	var out getRemindersOutput
	decodeResult(t, result, &out)
	if out.Count != 1 {
		t.Fatalf("expected 1 reminder, got %d", out.Count)
	}
	if !strings.Contains(out.Reminders[0].Message, "due today") {
		t.Errorf("expected a due-today reminder, got %q", out.Reminders[0].Message)
	}
}

func TestGetRemindersWithoutMonitor(t *testing.T) {
	srv := NewServer(newTaskManager(t), &fakeGateway{}, nil, "test")

	result := callTool(t, srv, "get_reminders", map[string]any{})

	if !result.IsError {
		t.Fatal("expected error result when the monitor is absent")
	}
}

func extractText(result *gomcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
