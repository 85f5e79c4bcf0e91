// Package cmd implements the CLI command structure for taskman.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/taskman/internal/config"
	"github.com/nibzard/taskman/internal/logging"
	"github.com/nibzard/taskman/internal/store"
	"github.com/nibzard/taskman/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskman CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskman", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.New(logging.FromConfig(cfg))

	// Determine the subcommand; bare "taskman" lists the collection.
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	s := store.Open(cfg.DataFile, logger)

	switch subcommand {
	case "add":
		return addCommand(s, remainingArgs)
	case "list":
		return listCommand(s, remainingArgs)
	case "complete", "done":
		return completeCommand(s, remainingArgs)
	case "delete", "rm":
		return deleteCommand(s, remainingArgs)
	case "update":
		return updateCommand(s, remainingArgs)
	case "search":
		return searchCommand(s, remainingArgs)
	case "stats":
		return statsCommand(s)
	case "sort":
		return sortCommand(s, remainingArgs)
	case "category":
		return categoryCommand(s, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, s)
	case "tui":
		return ui.RunTUI(ctx, cfg.DataFile)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func versionCommand() error {
	fmt.Printf("taskman %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: taskman [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>     Add a task (-priority, -category, -due)")
	fmt.Fprintln(w, "  list                  List tasks (-status pending|completed)")
	fmt.Fprintln(w, "  complete <id>         Mark a task as completed")
	fmt.Fprintln(w, "  delete <id>           Delete a task")
	fmt.Fprintln(w, "  update <id>           Update a task (-desc, -priority, -category, -due)")
	fmt.Fprintln(w, "  search <keyword>      Search descriptions and categories")
	fmt.Fprintln(w, "  stats                 Show task statistics")
	fmt.Fprintln(w, "  sort <criterion>      List tasks sorted by priority, date, or due_date")
	fmt.Fprintln(w, "  category <name>       List tasks in a category")
	fmt.Fprintln(w, "  doctor                Check the task file against its schema")
	fmt.Fprintln(w, "  tui                   Open the terminal dashboard")
	fmt.Fprintln(w, "  version               Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}
