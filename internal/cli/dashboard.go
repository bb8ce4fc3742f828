package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskwise-ai/taskwise/internal/core"
	"github.com/taskwise-ai/taskwise/pkg/models"
)

// Dashboard panel indices.
const (
	panelOverview = iota
	panelDeadlines
	panelReminders
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	categoryCounts map[models.Category]int
	priorityCounts map[models.Priority]int
	openCount      int
	doneCount      int
	deadlines      []deadlineSnapshot
	reminders      []string

	// State.
	loading bool
	err     error
}

type deadlineSnapshot struct {
	id      string
	title   string
	due     time.Time
	overdue bool
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	categoryCounts map[models.Category]int
	priorityCounts map[models.Priority]int
	openCount      int
	doneCount      int
	deadlines      []deadlineSnapshot
	reminders      []string
	err            error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	priorityHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	upcomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel:    panelOverview,
		loading:        true,
		categoryCounts: make(map[models.Category]int),
		priorityCounts: make(map[models.Priority]int),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.categoryCounts = msg.categoryCounts
		m.priorityCounts = msg.priorityCounts
		m.openCount = msg.openCount
		m.doneCount = msg.doneCount
		m.deadlines = msg.deadlines
		m.reminders = msg.reminders
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" TaskWise Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading data...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	overviewPanel := m.renderOverviewPanel()
	deadlinesPanel := m.renderDeadlinesPanel()
	remindersPanel := m.renderRemindersPanel()

	// Available width for panels after accounting for margins.
	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		// Horizontal layout: three columns.
		colWidth := availableWidth / 3
		overviewPanel = m.applyPanelStyle(panelOverview, overviewPanel, colWidth-4)
		deadlinesPanel = m.applyPanelStyle(panelDeadlines, deadlinesPanel, colWidth-4)
		remindersPanel = m.applyPanelStyle(panelReminders, remindersPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, overviewPanel, deadlinesPanel, remindersPanel)
	} else {
		// Vertical layout: stacked.
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		overviewPanel = m.applyPanelStyle(panelOverview, overviewPanel, panelWidth)
		deadlinesPanel = m.applyPanelStyle(panelDeadlines, deadlinesPanel, panelWidth)
		remindersPanel = m.applyPanelStyle(panelReminders, remindersPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, overviewPanel, deadlinesPanel, remindersPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderOverviewPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")

	total := m.openCount + m.doneCount
	if total == 0 {
		b.WriteString("  No tasks found.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-10s %d\n", "Open", m.openCount))
	b.WriteString(fmt.Sprintf("  %-10s %d\n", "Done", m.doneCount))
	b.WriteString("\n")

	for _, p := range models.Priorities {
		count := m.priorityCounts[p]
		if count == 0 {
			continue
		}
		label := fmt.Sprintf("  %-10s %d", p, count)
		b.WriteString(styleForPriority(p).Render(label))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, c := range models.Categories {
		count := m.categoryCounts[c]
		if count == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-10s %d\n", c, count))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d", total))
	return b.String()
}

func (m dashboardModel) renderDeadlinesPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Deadlines"))
	b.WriteString("\n")

	if len(m.deadlines) == 0 {
		b.WriteString("  No open tasks with deadlines.")
		return b.String()
	}

	for _, d := range m.deadlines {
		line := fmt.Sprintf("  %s  %s  %s", d.id, d.due.Format("2006-01-02"), d.title)
		if d.overdue {
			b.WriteString(overdueStyle.Render(line + "  (overdue)"))
		} else {
			b.WriteString(upcomingStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) renderRemindersPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Reminders"))
	b.WriteString("\n")

	if len(m.reminders) == 0 {
		b.WriteString("  Nothing due soon.")
		return b.String()
	}

	for _, r := range m.reminders {
		b.WriteString("  " + r + "\n")
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d reminder(s)", len(m.reminders)))
	return b.String()
}

func styleForPriority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return priorityHighStyle
	case models.PriorityMedium:
		return priorityMediumStyle
	case models.PriorityLow:
		return priorityLowStyle
	default:
		return lipgloss.NewStyle()
	}
}

const maxDashboardDeadlines = 10

func loadDashboardData() tea.Msg {
	result := dataLoadedMsg{
		categoryCounts: make(map[models.Category]int),
		priorityCounts: make(map[models.Priority]int),
	}

	if TaskMgr == nil {
		result.err = fmt.Errorf("task manager not initialized")
		return result
	}

	now := time.Now()
	for _, t := range TaskMgr.List(core.TaskFilter{}, core.SortDeadline) {
		result.categoryCounts[t.Category]++
		if t.Completed {
			result.doneCount++
			continue
		}
		result.openCount++
		result.priorityCounts[t.Priority]++

		if t.Deadline != nil && len(result.deadlines) < maxDashboardDeadlines {
			result.deadlines = append(result.deadlines, deadlineSnapshot{
				id:      t.ID,
				title:   t.Title,
				due:     *t.Deadline,
				overdue: t.Deadline.Before(now),
			})
		}
	}

	if Monitor != nil {
		for _, n := range Monitor.Pending() {
			result.reminders = append(result.reminders, n.Message)
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for tasks and reminders",
	Long: `Launch an interactive terminal dashboard showing task counts,
upcoming deadlines, and pending reminders.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
