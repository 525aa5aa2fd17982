package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/routing"
	"github.com/kamusis/kiosk/internal/safety"
)

var (
	flagScreenDomain string
	flagScreenOutput string
)

var screenCmd = &cobra.Command{
	Use:   "screen <input>",
	Short: "Check text against a domain's safety rules",
	Long: `Check an input (and optionally a model output) against the safety rules
of a domain. Without --domain the input is routed first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&flagScreenDomain, "domain", "", "Manifest id whose rules apply (default: route the input)")
	screenCmd.Flags().StringVar(&flagScreenOutput, "output", "", "Model output to screen along with the input")
	rootCmd.AddCommand(screenCmd)
}

type screenOut struct {
	Domain string `json:"domain"`
	safety.Result
}

func runScreen(cmd *cobra.Command, args []string) error {
	set, err := loadManifests()
	if err != nil {
		return err
	}
	input := strings.Join(args, " ")

	domain := flagScreenDomain
	if domain == "" {
		domain = routing.Router{Matcher: matchModeMatcher()}.PickDomain(input, set).ID
	}
	m, ok := set.Get(domain)
	if !ok && flagScreenDomain != "" {
		return fmt.Errorf("unknown domain %q", flagScreenDomain)
	}

	var res safety.Result
	if ok {
		res = safety.Screener{Matcher: matchModeMatcher()}.Screen(input, flagScreenOutput, m.SafetyRules)
	} else {
		res = safety.Screen(input, flagScreenOutput, nil)
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), screenOut{Domain: domain, Result: res})
	}
	printSection("Safety")
	printInfo("domain", emptyAsNA(domain))
	if res.OK {
		printOK("", res.Message)
	} else {
		for _, f := range res.Flags {
			printWarn("flag", f)
		}
	}
	return nil
}
