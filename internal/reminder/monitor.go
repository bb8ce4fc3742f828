package reminder

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// TaskLister is the slice of the task manager the monitor reads.
type TaskLister interface {
	List(filter core.TaskFilter, order core.SortOrder) []models.Task
}

// Notice is one reminder the monitor decided to raise.
type Notice struct {
	TaskID  string
	Title   string
	Message string
	// DaysLeft is the whole-day distance to the deadline: 1 means
	// tomorrow, 0 means today, negative means overdue.
	DaysLeft int
}

// Monitor periodically sweeps the task list and raises a notice when a
// task crosses into a new whole-day bucket relative to its deadline. Each
// task is notified at most once per bucket, so a task due tomorrow pings
// once now and once more when it becomes due today.
type Monitor struct {
	tasks    TaskLister
	notifier Notifier
	logger   *log.Logger
	interval time.Duration
	enabled  func() bool
	now      func() time.Time

	mu       sync.Mutex
	notified map[string]int
	hinted   bool
}

// NewMonitor creates a Monitor sweeping at the given interval. The
// enabled func is consulted on every sweep so a settings change takes
// effect without a restart; a nil func means always enabled.
func NewMonitor(tasks TaskLister, notifier Notifier, interval time.Duration, enabled func() bool, logger *log.Logger) *Monitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		enabled:  enabled,
		now:      time.Now,
		notified: make(map[string]int),
	}
}

// Run sweeps immediately, then on every interval tick until the context
// is canceled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep examines every open task with a deadline and delivers a notice
// for each one that entered a new day bucket since the last sweep.
func (m *Monitor) Sweep() {
	notices := m.Pending()
	if len(notices) == 0 {
		return
	}

	if m.enabled != nil && !m.enabled() {
		m.mu.Lock()
		hinted := m.hinted
		m.hinted = true
		m.mu.Unlock()
		if !hinted {
			m.logger.Info("reminders are waiting but notifications are off",
				"hint", "run 'tw config notifications on' to receive them")
		}
		return
	}

	for _, n := range notices {
		if err := m.notifier.Notify("Task Reminder", n.Message); err != nil {
			m.logger.Warn("delivering reminder failed", "task", n.TaskID, "err", err)
			continue
		}
		m.markNotified(n.TaskID, n.DaysLeft)
	}
}

// Pending returns the notices a sweep would deliver right now, without
// delivering them or recording anything. Completed tasks and tasks
// without deadlines never produce notices.
func (m *Monitor) Pending() []Notice {
	open := false
	tasks := m.tasks.List(core.TaskFilter{Completed: &open}, core.SortDeadline)
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	var notices []Notice
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		seen[t.ID] = struct{}{}

		days := daysUntil(now, *t.Deadline)
		msg, ok := noticeMessage(t.Title, days)
		if !ok {
			continue
		}
		if last, notified := m.notified[t.ID]; notified && last == days {
			continue
		}
		notices = append(notices, Notice{
			TaskID:   t.ID,
			Title:    t.Title,
			Message:  msg,
			DaysLeft: days,
		})
	}

	// Drop bookkeeping for tasks that were completed or deleted so a
	// reopened task can remind again.
	for id := range m.notified {
		if _, ok := seen[id]; !ok {
			delete(m.notified, id)
		}
	}
	return notices
}

func (m *Monitor) markNotified(id string, days int) {
	m.mu.Lock()
	m.notified[id] = days
	m.mu.Unlock()
}

// daysUntil is the whole-day distance from now to the deadline, rounded
// up. Twenty hours out is still "1 day"; two hours past is "-1".
func daysUntil(now, deadline time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// noticeMessage maps a day bucket to its reminder text. Buckets beyond
// tomorrow produce no notice.
func noticeMessage(title string, days int) (string, bool) {
	switch {
	case days == 1:
		return fmt.Sprintf("Task %q is due tomorrow!", title), true
	case days == 0:
		return fmt.Sprintf("Task %q is due today!", title), true
	case days < 0:
		return fmt.Sprintf("Task %q is overdue!", title), true
	default:
		return "", false
	}
}
