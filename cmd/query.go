package cmd

import (
	"fmt"

	"github.com/nibzard/taskman/internal/store"
	"github.com/nibzard/taskman/internal/task"
	"github.com/nibzard/taskman/internal/ui"
)

func searchCommand(s *store.Store, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("expected a search keyword")
	}
	keyword := args[0]
	results := s.Search(keyword)
	if len(results) == 0 {
		fmt.Printf("No tasks found matching %q.\n", keyword)
		return nil
	}
	fmt.Printf("Found %d task(s) matching %q:\n", len(results), keyword)
	printTable(results)
	return nil
}

func statsCommand(s *store.Store) error {
	fmt.Print(ui.StatisticsBlock(s.Statistics()))
	return nil
}

func sortCommand(s *store.Store, args []string) error {
	criterion := "id"
	if len(args) > 0 {
		criterion = args[0]
	}
	switch criterion {
	case "id", store.SortByPriority, store.SortByDate, store.SortByDueDate:
	default:
		return fmt.Errorf("unknown sort criterion %q (use priority, date, or due_date)", criterion)
	}

	tasks := s.Sorted(criterion)
	if len(tasks) == 0 {
		fmt.Println("No tasks to sort.")
		return nil
	}
	fmt.Printf("Tasks sorted by %s:\n", criterion)
	printTable(tasks)
	return nil
}

func categoryCommand(s *store.Store, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("expected a category name")
	}
	category := args[0]
	tasks := s.ListByCategory(category)
	if len(tasks) == 0 {
		fmt.Printf("No tasks found in category %q.\n", category)
		return nil
	}
	fmt.Print(ui.CategoryListing(category, tasks))
	return nil
}

func printTable(tasks []task.Task) {
	fmt.Print(ui.Table(tasks))
}
