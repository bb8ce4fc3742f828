package core

import (
	"context"
	"sync"
	"time"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

// SuggestionGateway is the enrichment surface the enricher drives. Every
// method returns a well-typed value even when the remote service fails;
// the implementations fall back to deterministic substitutes.
type SuggestionGateway interface {
	SuggestCategory(ctx context.Context, title string) models.Category
	SuggestPriority(ctx context.Context, title string) models.Priority
	SuggestDeadline(ctx context.Context, title string) time.Time
	SuggestSteps(ctx context.Context, title string) []string
	Advise(ctx context.Context, title string) string
	AdviseTasks(ctx context.Context, tasks []models.Task) string
}

// TaskPatcher is the slice of the task manager the enricher needs.
type TaskPatcher interface {
	Update(id string, patch models.TaskPatch) (bool, error)
}

// Enricher reconciles asynchronous AI suggestions with the task store.
// The caller inserts the task first (optimistic insert); Enrich then runs
// one adapter per goroutine and applies each result as a field-scoped
// patch. Patches merge rather than overwrite, and a patch landing after
// the task was deleted is a no-op by the store's contract.
type Enricher struct {
	gateway SuggestionGateway
	tasks   TaskPatcher
}

// NewEnricher creates an Enricher over the given gateway and task store.
func NewEnricher(gateway SuggestionGateway, tasks TaskPatcher) *Enricher {
	return &Enricher{gateway: gateway, tasks: tasks}
}

// Enrich fetches category, priority, deadline, steps, and advice for the
// given task, patching each field as its fetch completes. A deadline the
// user set explicitly is left alone. Enrich blocks until all fetches
// resolve; run it in a goroutine for fire-and-forget behavior.
func (e *Enricher) Enrich(ctx context.Context, task models.Task) {
	var wg sync.WaitGroup

	patch := func(fetch func() models.TaskPatch) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.tasks.Update(task.ID, fetch())
		}()
	}

	patch(func() models.TaskPatch {
		c := e.gateway.SuggestCategory(ctx, task.Title)
		return models.TaskPatch{Category: &c}
	})
	patch(func() models.TaskPatch {
		p := e.gateway.SuggestPriority(ctx, task.Title)
		return models.TaskPatch{Priority: &p}
	})
	if task.Deadline == nil {
		patch(func() models.TaskPatch {
			d := e.gateway.SuggestDeadline(ctx, task.Title)
			return models.TaskPatch{Deadline: &d}
		})
	}
	patch(func() models.TaskPatch {
		return models.TaskPatch{Steps: e.gateway.SuggestSteps(ctx, task.Title)}
	})
	patch(func() models.TaskPatch {
		s := e.gateway.Advise(ctx, task.Title)
		return models.TaskPatch{Suggestion: &s}
	})

	wg.Wait()
}
