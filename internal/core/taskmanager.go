package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// SortOrder selects how List orders its result.
type SortOrder string

const (
	// SortCreated keeps insertion order.
	SortCreated SortOrder = "created"
	// SortDeadline orders by ascending deadline; tasks without one sort last.
	SortDeadline SortOrder = "deadline"
	// SortPriority orders High before Medium before Low.
	SortPriority SortOrder = "priority"
)

// TaskFilter selects tasks for List. All set fields must match (AND).
type TaskFilter struct {
	// Completed filters by completion status when non-nil.
	Completed *bool
	// Category filters to one category when non-empty.
	Category models.Category
	// Priority filters to one priority when non-empty.
	Priority models.Priority
	// DueOn filters to tasks whose deadline falls on the same calendar day.
	DueOn *time.Time
}

// AddOpts carries optional fields for Add.
type AddOpts struct {
	Priority models.Priority
	Deadline *time.Time
}

// TaskManager is the single source of truth for the task collection. Every
// mutation persists the whole collection before returning; mutations keyed
// on an unknown ID are defined no-ops (found=false), never faults.
type TaskManager interface {
	Add(title string, opts AddOpts) (models.Task, error)
	Get(id string) (models.Task, bool)
	Update(id string, patch models.TaskPatch) (bool, error)
	ToggleComplete(id string) (bool, error)
	Delete(id string) (bool, error)
	List(filter TaskFilter, order SortOrder) []models.Task
}

type taskManager struct {
	mu     sync.RWMutex
	store  storage.TaskStore
	data   storage.Collection
	logger *log.Logger
	now    func() time.Time
}

// NewTaskManager hydrates a TaskManager from the given store. The returned
// manager is safe for concurrent use.
func NewTaskManager(store storage.TaskStore, logger *log.Logger) (TaskManager, error) {
	if logger == nil {
		logger = log.Default()
	}
	data, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("hydrating task manager: %w", err)
	}
	return &taskManager{
		store:  store,
		data:   data,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (m *taskManager) Add(title string, opts AddOpts) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, models.ErrEmptyTitle
	}

	priority := opts.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task := models.Task{
		ID:       fmt.Sprintf("T-%05d", m.data.NextID),
		Title:    title,
		Category: DetermineCategory(title),
		Priority: priority,
		Deadline: opts.Deadline,
		Created:  m.now(),
	}
	m.data.NextID++
	m.data.Tasks = append(m.data.Tasks, task)

	return task, m.persist()
}

func (m *taskManager) Get(id string) (models.Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.data.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func (m *taskManager) Update(id string, patch models.TaskPatch) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	applyPatch(&m.data.Tasks[i], patch)
	return true, m.persist()
}

func (m *taskManager) ToggleComplete(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	m.data.Tasks[i].Completed = !m.data.Tasks[i].Completed
	return true, m.persist()
}

func (m *taskManager) Delete(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	m.data.Tasks = append(m.data.Tasks[:i], m.data.Tasks[i+1:]...)
	return true, m.persist()
}

func (m *taskManager) List(filter TaskFilter, order SortOrder) []models.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.Task
	for _, t := range m.data.Tasks {
		if matchesFilter(t, filter) {
			result = append(result, t)
		}
	}

	switch order {
	case SortDeadline:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].Deadline, result[j].Deadline
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return models.PriorityRank(result[i].Priority) < models.PriorityRank(result[j].Priority)
		})
	}
	return result
}

// indexOf must be called with the mutex held.
func (m *taskManager) indexOf(id string) int {
	for i, t := range m.data.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the mutex held. Save failures are logged as
// well as returned: the in-memory mutation has already been applied and
// the caller may choose to keep going.
func (m *taskManager) persist() error {
	if err := m.store.Save(m.data); err != nil {
		m.logger.Error("persisting task collection failed", "err", err)
		return err
	}
	return nil
}

func applyPatch(t *models.Task, patch models.TaskPatch) {
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Category != nil {
		t.Category = models.NormalizeCategory(string(*patch.Category))
	}
	if patch.Priority != nil {
		t.Priority = models.NormalizePriority(string(*patch.Priority))
	}
	if patch.ClearDeadline {
		t.Deadline = nil
	} else if patch.Deadline != nil {
		t.Deadline = patch.Deadline
	}
	if patch.Suggestion != nil {
		t.Suggestion = *patch.Suggestion
	}
	if patch.Steps != nil {
		t.Steps = patch.Steps
	}
}

func matchesFilter(t models.Task, filter TaskFilter) bool {
	if filter.Completed != nil && t.Completed != *filter.Completed {
		return false
	}
	if filter.Category != "" && t.Category != filter.Category {
		return false
	}
	if filter.Priority != "" && t.Priority != filter.Priority {
		return false
	}
	if filter.DueOn != nil {
		if t.Deadline == nil {
			return false
		}
		y1, m1, d1 := t.Deadline.Date()
		y2, m2, d2 := filter.DueOn.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	return true
}
