package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// resolveDryRun decides whether a sweep simulates deletions. Explicit flags
// win; otherwise interactive terminals get a safe dry run while
// non-interactive invocations (cron) delete for real.
func resolveDryRun(forceDelete, forceDryRun, interactive bool) bool {
	if forceDelete {
		return false
	}
	if forceDryRun {
		return true
	}
	return interactive
}

func interactiveTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatAge(seconds int64) string {
	switch {
	case seconds >= 86400:
		return fmt.Sprintf("%dd", seconds/86400)
	case seconds >= 3600:
		return fmt.Sprintf("%dh", seconds/3600)
	case seconds >= 60:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
