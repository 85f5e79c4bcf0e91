// Package store owns the in-memory task collection and its file persistence.
//
// A Store mirrors one JSON task file. The file is read once when the store
// is opened; every mutating operation rewrites it in full with an atomic
// temp-then-rename replace before returning, so there is no deferred write
// path and a reader never observes a half-written file. The store assumes
// exclusive single-process ownership of its backing file; concurrent
// writers are unsupported.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/task"
)

// Store holds the task collection for one backing file.
type Store struct {
	path   string
	tasks  []task.Task
	logger *log.Logger
}

// Open constructs a store for the given backing file and loads it.
//
// A missing file yields an empty collection. So does an unreadable file,
// malformed JSON, or a well-formed document that is not an array of
// records: a broken convenience file is treated as "start fresh" rather
// than a fatal error, so the program always starts. Recovery is logged at
// warn level but never surfaced to the caller.
func Open(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{path: path, logger: logger}
	s.tasks = s.load()
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the collection in stored (insertion) order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id, or false if absent.
func (s *Store) Get(id int) (task.Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return task.Task{}, false
}

func (s *Store) load() []task.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("task file unreadable, starting with empty list",
				"path", s.path, "err", err)
		}
		return []task.Task{}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("task file malformed, starting with empty list",
			"path", s.path, "err", err)
		return []task.Task{}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	for i := range tasks {
		task.Backfill(&tasks[i])
	}
	return tasks
}

// save writes the whole collection with 2-space indentation and a trailing
// newline, to a temp file in the same directory, then atomically renames
// it over the destination. A temp file left by a failed attempt is removed.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		// A short write leaves a partial temp file behind; drop it.
		_ = os.Remove(tmp)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace task file: %w", err)
	}
	s.logger.Debug("task file saved", "path", s.path, "tasks", len(s.tasks))
	return nil
}

// nextID returns max(existing ids)+1. This never reuses an id after a
// deletion and tolerates gapped or out-of-order ids in a loaded file.
func (s *Store) nextID() int {
	max := 0
	for i := range s.tasks {
		if s.tasks[i].ID > max {
			max = s.tasks[i].ID
		}
	}
	return max + 1
}
