package cmd

import (
	"fmt"
	"os"
	"strings"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions so kiosk's CLI output keeps consistent
// icons and indentation.
//
// Icon semantics:
//   ✓  success / decided
//   ✗  error / failure          (written to stderr)
//   ⚠  warning / safety flag
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info

// printSection prints a top-level section header, e.g. "=== Route ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printOK prints a success line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printOK(name, msg string) {
	printLine("✓", name, msg)
}

// printErr prints an error line to stderr.
func printErr(name, msg string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "  ✗  %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "  ✗  [%s] %s\n", name, msg)
	}
}

// printWarn prints a warning line.
func printWarn(name, msg string) {
	printLine("⚠", name, msg)
}

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) {
	printLine("○", name, msg)
}

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) {
	printLine("-", name, msg)
}

// printInfo prints a neutral informational line.
func printInfo(name, msg string) {
	printLine("~", name, msg)
}

func printLine(icon, name, msg string) {
	if name == "" {
		fmt.Printf("  %s  %s\n", icon, msg)
	} else {
		fmt.Printf("  %s  [%s] %s\n", icon, name, msg)
	}
}

// listOrNone renders items comma-separated, or "none".
func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
