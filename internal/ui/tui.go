package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskman/internal/logging"
	"github.com/nibzard/taskman/internal/store"
	"github.com/nibzard/taskman/internal/task"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	countsStyle = lipgloss.NewStyle().Faint(true)
	filterStyle = lipgloss.NewStyle().Italic(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// sortCycle is the order the s key cycles through.
var sortCycle = []string{"id", store.SortByPriority, store.SortByDate, store.SortByDueDate}

// RunTUI starts the read-only dashboard over the given task file. The
// file is re-read every tick, so mutations made by concurrent taskman
// invocations show up within a second.
func RunTUI(ctx context.Context, dataFile string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(dataFile)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	dataFile     string
	tasks        []task.Task
	stats        store.Statistics
	tickInterval time.Duration
	filter       task.Status // filter by status, "" shows everything
	sortIndex    int         // index into sortCycle
	showHelp     bool
}

type tickMsg time.Time

func newTUIModel(dataFile string) *tuiModel {
	return &tuiModel{
		dataFile:     dataFile,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "s":
			m.sortIndex = (m.sortIndex + 1) % len(sortCycle)
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = task.StatusPending
			m.refresh()
			return m, nil
		case "2":
			m.filter = task.StatusCompleted
			m.refresh()
			return m, nil
		case "0":
			m.filter = ""
			m.refresh()
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taskman") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		b.WriteString(m.footer())
		return b.String()
	}

	b.WriteString(countsStyle.Render(fmt.Sprintf("Total: %d  Pending: %d  Completed: %d  High priority pending: %d",
		m.stats.Total, m.stats.Pending, m.stats.Completed, m.stats.HighPriorityPending)) + "\n\n")

	if m.filter != "" {
		b.WriteString(filterStyle.Render(fmt.Sprintf("Filter: %s (0 to clear)", m.filter)) + "\n\n")
	}
	if sortBy := sortCycle[m.sortIndex]; sortBy != "id" {
		b.WriteString(filterStyle.Render("Sorted by: "+sortBy) + "\n\n")
	}

	if len(m.tasks) == 0 {
		b.WriteString("No tasks found.\n\n")
	} else {
		b.WriteString(Table(m.tasks))
		b.WriteString("\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m *tuiModel) footer() string {
	return footerStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", m.tickInterval)) + "\n"
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  s            Cycle sort order (id, priority, date, due date)\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending tasks\n")
	b.WriteString("  2            Show completed tasks\n")
	b.WriteString("  0            Clear filter\n\n")
}

// refresh re-reads the task file. The dashboard is read-only, so a fresh
// store per tick keeps it in sync with whoever is mutating the file.
func (m *tuiModel) refresh() {
	s := store.Open(m.dataFile, logging.Discard())
	m.stats = s.Statistics()
	tasks := s.Sorted(sortCycle[m.sortIndex])
	if m.filter != "" {
		filtered := tasks[:0:0]
		for _, t := range tasks {
			if t.Status == m.filter {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	m.tasks = tasks
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// IsTTY returns true if the writer is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
