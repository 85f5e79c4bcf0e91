package store

import (
	"sort"
	"strings"

	"github.com/nibzard/taskman/internal/task"
)

// dueDateMax is the sort key for tasks without a due date, so they order
// after every real date.
const dueDateMax = "9999-12-31"

// Add validates the fields, appends a new pending task, and persists.
// The description must be non-empty. An unrecognized priority silently
// falls back to medium; that leniency is long-standing file behavior, not
// an oversight. A bad due date aborts the add before any mutation, so no
// id is consumed. Returns the new task's id.
func (s *Store) Add(description, priority, category, dueDate string) (int, error) {
	if description == "" {
		return 0, &task.ValidationError{Field: "description", Err: task.ErrEmptyDescription}
	}
	due, err := task.NormalizeDueDate(dueDate)
	if err != nil {
		return 0, err
	}

	t := task.New(s.nextID(), description, task.PriorityOrDefault(priority), category, due)
	s.tasks = append(s.tasks, t)
	if err := s.save(); err != nil {
		return 0, err
	}
	s.logger.Info("task added", "id", t.ID, "priority", t.Priority)
	return t.ID, nil
}

// Complete marks a task completed and stamps completed_at. Returns false
// with a nil error when the id is unknown. Completing an already-completed
// task succeeds again and overwrites completed_at with a fresh timestamp;
// see the package notes on repeated completion.
func (s *Store) Complete(id int) (bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = task.StatusCompleted
			s.tasks[i].CompletedAt = task.Now()
			if err := s.save(); err != nil {
				return false, err
			}
			s.logger.Info("task completed", "id", id)
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the task with the given id. Remaining ids are not
// renumbered. Returns false with a nil error when the id is unknown.
func (s *Store) Delete(id int) (bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if err := s.save(); err != nil {
				return false, err
			}
			s.logger.Info("task deleted", "id", id)
			return true, nil
		}
	}
	return false, nil
}

// UpdateOptions carries the tri-state update fields. A nil pointer leaves
// the field untouched. An explicit empty string clears Category and
// DueDate, but for Description and Priority it means "not supplied" — only
// a non-empty value changes those two. This asymmetry mirrors how the file
// has always been updated and is kept deliberately.
type UpdateOptions struct {
	Description *string
	Priority    *string
	Category    *string
	DueDate     *string
}

// Update applies the supplied fields to the task with the given id. All
// validation runs before any field is touched, so a bad priority or due
// date aborts the whole update with no partial changes. Returns false with
// a nil error when the id is unknown.
func (s *Store) Update(id int, opts UpdateOptions) (bool, error) {
	var priority task.Priority
	if opts.Priority != nil && *opts.Priority != "" {
		p, err := task.ParsePriority(*opts.Priority)
		if err != nil {
			return false, err
		}
		priority = p
	}
	var due string
	if opts.DueDate != nil && *opts.DueDate != "" {
		d, err := task.NormalizeDueDate(*opts.DueDate)
		if err != nil {
			return false, err
		}
		due = d
	}

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if opts.Description != nil && *opts.Description != "" {
			s.tasks[i].Description = *opts.Description
		}
		if priority != "" {
			s.tasks[i].Priority = priority
		}
		if opts.Category != nil {
			s.tasks[i].Category = *opts.Category
		}
		if opts.DueDate != nil {
			if *opts.DueDate == "" {
				s.tasks[i].DueDate = ""
			} else {
				s.tasks[i].DueDate = due
			}
		}
		if err := s.save(); err != nil {
			return false, err
		}
		s.logger.Info("task updated", "id", id)
		return true, nil
	}
	return false, nil
}

// Search returns tasks whose description or category contains the keyword,
// case-insensitively, in stored order. An empty result is not an error.
func (s *Store) Search(keyword string) []task.Task {
	needle := strings.ToLower(keyword)
	matches := make([]task.Task, 0)
	for i := range s.tasks {
		if strings.Contains(strings.ToLower(s.tasks[i].Description), needle) ||
			strings.Contains(strings.ToLower(s.tasks[i].Category), needle) {
			matches = append(matches, s.tasks[i])
		}
	}
	return matches
}

// Filter returns tasks with the given status in stored order. An empty
// status returns the whole collection.
func (s *Store) Filter(status task.Status) []task.Task {
	if status == "" {
		return s.Tasks()
	}
	matches := make([]task.Task, 0)
	for i := range s.tasks {
		if s.tasks[i].Status == status {
			matches = append(matches, s.tasks[i])
		}
	}
	return matches
}

// ListByCategory returns tasks whose category equals the given one,
// case-insensitively, in stored order.
func (s *Store) ListByCategory(category string) []task.Task {
	want := strings.ToLower(category)
	matches := make([]task.Task, 0)
	for i := range s.tasks {
		if strings.ToLower(s.tasks[i].Category) == want {
			matches = append(matches, s.tasks[i])
		}
	}
	return matches
}

// Statistics holds aggregate counts over the collection.
type Statistics struct {
	Total               int
	Completed           int
	Pending             int
	HighPriorityPending int
}

// CompletionRate returns completed/total as a percentage, 0 when empty.
func (st Statistics) CompletionRate() float64 {
	if st.Total == 0 {
		return 0
	}
	return float64(st.Completed) / float64(st.Total) * 100
}

// Statistics computes aggregate counts over the in-memory collection.
func (s *Store) Statistics() Statistics {
	var st Statistics
	st.Total = len(s.tasks)
	for i := range s.tasks {
		t := &s.tasks[i]
		switch t.Status {
		case task.StatusCompleted:
			st.Completed++
		case task.StatusPending:
			st.Pending++
			if t.Priority == task.PriorityHigh {
				st.HighPriorityPending++
			}
		}
	}
	return st
}

// Sort criteria accepted by Sorted.
const (
	SortByPriority = "priority"
	SortByDate     = "date"
	SortByDueDate  = "due_date"
)

// Sorted returns a copy of the collection ordered by the given criterion;
// the stored order is never mutated.
//
//   - "priority": high before medium before low; unrecognized priorities
//     rank with low; ties broken by ascending id
//   - "date": newest created_at first (timestamps are fixed-width, so the
//     string comparison is chronological)
//   - "due_date": earliest due date first, tasks without one last, ties
//     broken by ascending id
//
// Any other criterion, including "id", returns the stored order.
func (s *Store) Sorted(criterion string) []task.Task {
	tasks := s.Tasks()
	switch criterion {
	case SortByPriority:
		sort.Slice(tasks, func(i, j int) bool {
			ri, rj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
			if ri != rj {
				return ri < rj
			}
			return tasks[i].ID < tasks[j].ID
		})
	case SortByDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt > tasks[j].CreatedAt
		})
	case SortByDueDate:
		sort.Slice(tasks, func(i, j int) bool {
			di, dj := tasks[i].DueDate, tasks[j].DueDate
			if di == "" {
				di = dueDateMax
			}
			if dj == "" {
				dj = dueDateMax
			}
			if di != dj {
				return di < dj
			}
			return tasks[i].ID < tasks[j].ID
		})
	}
	return tasks
}
