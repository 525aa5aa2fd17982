package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/engine"
	"github.com/kamusis/kiosk/internal/llm"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Run the full answer flow: decide, gate references, call the model, screen",
	Long: `Run the full answer flow for a query.

No model client ships with kiosk; until one is wired in, ask prints the
prompt that would be sent and reports that the model is not wired.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

type askOut struct {
	engine.Response
	Error string `json:"error,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	set, err := loadManifests()
	if err != nil {
		return err
	}
	eng, err := newEngine(engine.Static(set))
	if err != nil {
		return err
	}

	resp, err := eng.Answer(cmd.Context(), strings.Join(args, " "), area())
	notWired := errors.Is(err, llm.ErrNotWired)
	if err != nil && !notWired {
		return err
	}

	if flagJSON {
		out := askOut{Response: resp}
		if notWired {
			out.Error = err.Error()
		}
		return printJSON(cmd.OutOrStdout(), out)
	}

	d := resp.Decision
	printSection("Answer")
	printOK("domain", fmt.Sprintf("%s / %s", d.Domain, d.Task))
	switch {
	case !d.Attach:
		printSkip("references", "not attached")
	case resp.Grounded:
		printOK("references", fmt.Sprintf("%d chunk(s) passed the confidence gate", len(d.Chunks)))
	default:
		printWarn("references", fmt.Sprintf("%d chunk(s) below the confidence gate, not cited", len(d.Chunks)))
	}
	if !resp.Safety.OK {
		printWarn("safety", resp.Safety.Message)
	}

	if notWired {
		printWarn("", "no model is wired; this is the prompt that would be sent:")
		fmt.Println()
		fmt.Println(resp.Prompt)
		return nil
	}
	fmt.Println()
	fmt.Println(resp.Reply)
	return nil
}
