// Package ui renders task listings for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskman/internal/store"
	"github.com/nibzard/taskman/internal/task"
)

const tableWidth = 80

// StatusIcon returns the glyph shown next to a task's status.
func StatusIcon(s task.Status) string {
	if s == task.StatusCompleted {
		return "✓"
	}
	return "○"
}

// PriorityIcon returns the glyph shown next to a task's priority.
func PriorityIcon(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "🔴"
	case task.PriorityMedium:
		return "🟡"
	case task.PriorityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// Table renders tasks as a fixed-width console table. Descriptions longer
// than 28 characters are truncated with "..". Empty categories and due
// dates render as "-".
func Table(tasks []task.Task) string {
	var b strings.Builder
	rule := strings.Repeat("=", tableWidth)
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-5s %-10s %-10s %-12s %-30s %s\n",
		"ID", "Status", "Priority", "Category", "Description", "Due Date"))
	b.WriteString(rule + "\n")
	for i := range tasks {
		b.WriteString(taskRow(&tasks[i]))
	}
	b.WriteString(rule + "\n")
	return b.String()
}

func taskRow(t *task.Task) string {
	return fmt.Sprintf("%-5d %s %-8s %s %-8s %-12s %-30s %s\n",
		t.ID,
		StatusIcon(t.Status), t.Status,
		PriorityIcon(t.Priority), t.Priority,
		orDash(t.Category),
		truncate(t.Description, 28),
		orDash(t.DueDate))
}

// CategoryListing renders the tasks of one category, with due dates
// appended to rows that have one.
func CategoryListing(category string, tasks []task.Task) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("Tasks in category: " + category + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("%-5s %-10s %-10s %s\n", "ID", "Status", "Priority", "Description"))
	b.WriteString(rule + "\n")
	for i := range tasks {
		t := &tasks[i]
		due := ""
		if t.DueDate != "" {
			due = fmt.Sprintf(" (Due: %s)", t.DueDate)
		}
		b.WriteString(fmt.Sprintf("%-5d %s %-8s %s %-8s %s%s\n",
			t.ID,
			StatusIcon(t.Status), t.Status,
			PriorityIcon(t.Priority), t.Priority,
			t.Description, due))
	}
	b.WriteString(rule + "\n")
	return b.String()
}

// StatisticsBlock renders aggregate counts plus the completion rate.
func StatisticsBlock(st store.Statistics) string {
	var b strings.Builder
	rule := strings.Repeat("=", 40)
	b.WriteString(rule + "\n")
	b.WriteString("Task Statistics\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Total tasks:             %d\n", st.Total))
	b.WriteString(fmt.Sprintf("Completed:               %d\n", st.Completed))
	b.WriteString(fmt.Sprintf("Pending:                 %d\n", st.Pending))
	b.WriteString(fmt.Sprintf("High priority (pending): %d\n", st.HighPriorityPending))
	if st.Total > 0 {
		b.WriteString(fmt.Sprintf("Completion rate:         %.1f%%\n", st.CompletionRate()))
	}
	b.WriteString(rule + "\n")
	return b.String()
}

func truncate(s string, max int) string {
	// Count runes so multi-byte descriptions are never cut mid-character.
	r := []rune(s)
	if len(r) > max {
		return string(r[:max]) + ".."
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
