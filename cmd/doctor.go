package cmd

import (
	"fmt"
	"os"

	"github.com/nibzard/taskman/internal/config"
	"github.com/nibzard/taskman/internal/store"
)

// doctorCommand checks the backing file and reports what it finds. It is
// purely diagnostic; a broken file never stops the other commands, which
// fall back to an empty collection.
func doctorCommand(cfg *config.Config, s *store.Store) error {
	fmt.Println("Taskman Doctor")
	fmt.Println("==============")
	fmt.Println()

	allOK := true

	fmt.Printf("Task file: %s\n", cfg.DataFile)
	if _, err := os.Stat(cfg.DataFile); os.IsNotExist(err) {
		fmt.Println("  ✅ Not created yet (will be written on first add)")
	} else if err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  ✅ OK (%d tasks loaded)\n", s.Len())
	}
	fmt.Println()

	fmt.Printf("Schema file: %s\n", cfg.SchemaFile)
	if _, err := os.Stat(cfg.SchemaFile); err != nil {
		fmt.Println("  ⚠️  Not found (falling back to minimal checks)")
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	result := s.Verify(store.VerifyOptions{SchemaPath: cfg.SchemaFile})
	if result.UsedSchema {
		fmt.Println("Validation: JSON Schema")
	} else {
		fmt.Println("Validation: minimal checks")
	}
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if result.Valid {
		fmt.Println("  ✅ Task file is valid")
	} else {
		allOK = false
		for _, err := range result.Errors {
			fmt.Printf("  ❌ %v\n", err)
		}
	}
	fmt.Println()

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
