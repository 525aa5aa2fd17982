package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/engine"
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run <query>",
	Short: "Decide, retrieve and build the prompt without calling a model",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDryRun,
}

func init() {
	rootCmd.AddCommand(dryRunCmd)
}

func runDryRun(cmd *cobra.Command, args []string) error {
	set, err := loadManifests()
	if err != nil {
		return err
	}
	eng, err := newEngine(engine.Static(set))
	if err != nil {
		return err
	}
	r, err := eng.DryRun(cmd.Context(), strings.Join(args, " "), area())
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), r)
	}
	printReport(r, true)
	return nil
}

// printReport renders a dry-run report. The prompt preview is printed only
// when withPrompt is set.
func printReport(r engine.DryRunReport, withPrompt bool) {
	printSection("Dry run")
	if r.Domain == "" {
		printMiss("domain", "none")
	} else {
		printOK("domain", r.Domain)
	}
	printInfo("task", r.Task)
	printInfo("packs", listOrNone(r.Packs))
	if r.Attach {
		printOK("attach", "yes")
	} else {
		printSkip("attach", "no")
	}
	printInfo("chunks", listOrNone(r.Chunks))
	if len(r.Flags) > 0 {
		printWarn("safety", strings.Join(r.Flags, "; "))
	} else {
		printOK("safety", "ok")
	}
	if withPrompt {
		fmt.Println("\n--- prompt preview ---")
		fmt.Println(r.PromptPreview)
	}
}
