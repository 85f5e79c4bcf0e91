package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/taskman/internal/store"
	"github.com/nibzard/taskman/internal/task"
)

// addCommand adds a new task. Everything after the flags is the description.
func addCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("taskman add", flag.ContinueOnError)
	priority := fs.String("priority", "medium", "Priority (high, medium, low)")
	category := fs.String("category", "", "Category label")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	description := strings.Join(fs.Args(), " ")
	id, err := s.Add(description, *priority, *category, *due)
	if err != nil {
		return validationMessage(err)
	}
	fmt.Printf("✓ Task %d added successfully!\n", id)
	return nil
}

// listCommand lists tasks, optionally filtered by status.
func listCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("taskman list", flag.ContinueOnError)
	status := fs.String("status", "", "Filter by status (pending, completed)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tasks := s.Filter(task.Status(*status))
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	printTable(tasks)
	return nil
}

func completeCommand(s *store.Store, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	ok, err := s.Complete(id)
	if err != nil {
		return fmt.Errorf("completing task %d: %w", id, err)
	}
	if !ok {
		fmt.Printf("✗ Task %d not found.\n", id)
		return nil
	}
	fmt.Printf("✓ Task %d marked as completed!\n", id)
	return nil
}

func deleteCommand(s *store.Store, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	ok, err := s.Delete(id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	if !ok {
		fmt.Printf("✗ Task %d not found.\n", id)
		return nil
	}
	fmt.Printf("✓ Task %d deleted successfully!\n", id)
	return nil
}

// updateCommand updates the fields given on the command line. A flag that
// is not passed leaves its field alone; -category "" and -due "" clear
// those fields. The id may come before or after the flags.
func updateCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("taskman update", flag.ContinueOnError)
	desc := fs.String("desc", "", "New description")
	priority := fs.String("priority", "", "New priority (high, medium, low)")
	category := fs.String("category", "", "New category (empty clears)")
	due := fs.String("due", "", "New due date (YYYY-MM-DD, empty clears)")

	var idArgs []string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		idArgs = args[:1]
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if idArgs == nil {
		idArgs = fs.Args()
	}

	id, err := parseID(idArgs)
	if err != nil {
		return err
	}

	var opts store.UpdateOptions
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "desc":
			opts.Description = desc
		case "priority":
			opts.Priority = priority
		case "category":
			opts.Category = category
		case "due":
			opts.DueDate = due
		}
	})

	ok, err := s.Update(id, opts)
	if err != nil {
		return validationMessage(err)
	}
	if !ok {
		fmt.Printf("✗ Task %d not found.\n", id)
		return nil
	}
	fmt.Printf("✓ Task %d updated successfully!\n", id)
	return nil
}

func parseID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one task id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

// validationMessage rewraps store validation errors into the messages the
// menu has always printed, and passes everything else (storage failures)
// through untouched.
func validationMessage(err error) error {
	var verr *task.ValidationError
	if errors.As(err, &verr) {
		switch {
		case errors.Is(err, task.ErrEmptyDescription):
			return fmt.Errorf("Description cannot be empty")
		case errors.Is(err, task.ErrInvalidDueDate):
			return fmt.Errorf("Invalid date format. Use YYYY-MM-DD")
		case errors.Is(err, task.ErrInvalidPriority):
			return fmt.Errorf("Invalid priority. Use high, medium, or low")
		}
		return err
	}
	return err
}
