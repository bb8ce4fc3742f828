package core

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

type cannedGateway struct {
	category models.Category
	priority models.Priority
	deadline time.Time
	steps    []string
	advice   string

	deadlineCalls int
}

func (g *cannedGateway) SuggestCategory(context.Context, string) models.Category { return g.category }
func (g *cannedGateway) SuggestPriority(context.Context, string) models.Priority { return g.priority }

func (g *cannedGateway) SuggestDeadline(context.Context, string) time.Time {
	g.deadlineCalls++
	return g.deadline
}

func (g *cannedGateway) SuggestSteps(context.Context, string) []string  { return g.steps }
func (g *cannedGateway) Advise(context.Context, string) string          { return g.advice }
func (g *cannedGateway) AdviseTasks(context.Context, []models.Task) string {
	return g.advice
}

func TestEnrichAppliesAllFields(t *testing.T) {
	mgr, _ := newManager(t)
	task, err := mgr.Add("write the report", AddOpts{})
	require.NoError(t, err)

	gw := &cannedGateway{
		category: models.CategoryWork,
		priority: models.PriorityHigh,
		deadline: time.Date(2025, time.June, 1, 15, 0, 0, 0, time.UTC),
		steps:    []string{"outline", "draft", "review"},
		advice:   "start with the numbers",
	}
	NewEnricher(gw, mgr).Enrich(context.Background(), task)

	got, ok := mgr.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.CategoryWork, got.Category)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, gw.deadline, *got.Deadline)
	assert.Equal(t, gw.steps, got.Steps)
	assert.Equal(t, "start with the numbers", got.Suggestion)
}

func TestEnrichKeepsUserDeadline(t *testing.T) {
	mgr, _ := newManager(t)
	deadline := time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC)
	task, err := mgr.Add("plan the picnic", AddOpts{Deadline: &deadline})
	require.NoError(t, err)

	gw := &cannedGateway{
		category: models.CategoryPersonal,
		priority: models.PriorityLow,
		deadline: time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
		steps:    []string{"pick a spot"},
		advice:   "check the weather",
	}
	NewEnricher(gw, mgr).Enrich(context.Background(), task)

	got, _ := mgr.Get(task.ID)
	require.NotNil(t, got.Deadline)
	assert.Equal(t, deadline, *got.Deadline)
	assert.Equal(t, 0, gw.deadlineCalls, "a user-set deadline must not be refetched")
}

func TestEnrichDeletedTaskIsNoOp(t *testing.T) {
	store := &memStore{data: storage.EmptyCollection()}
	mgr, err := NewTaskManager(store, log.New(io.Discard))
	require.NoError(t, err)

	task, err := mgr.Add("short lived", AddOpts{})
	require.NoError(t, err)
	_, err = mgr.Delete(task.ID)
	require.NoError(t, err)

	gw := &cannedGateway{category: models.CategoryOther, priority: models.PriorityLow}
	NewEnricher(gw, mgr).Enrich(context.Background(), task)

	assert.Empty(t, mgr.List(TaskFilter{}, SortCreated))
}
