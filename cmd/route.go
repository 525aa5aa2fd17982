package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/routing"
)

var routeCmd = &cobra.Command{
	Use:   "route <query>",
	Short: "Show how a query scores against every domain and what would be decided",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

type domainScoreOut struct {
	Domain      string  `json:"domain"`
	PatternHits int     `json:"pattern_hits"`
	SeedSim     float64 `json:"seed_sim"`
	Score       float64 `json:"score"`
}

type routeOut struct {
	Query     string           `json:"query"`
	Scores    []domainScoreOut `json:"scores"`
	Domain    string           `json:"domain"`
	Task      string           `json:"task"`
	Packs     []string         `json:"packs"`
	Attach    bool             `json:"attach_context"`
	Required  bool             `json:"required"`
	Probe     float64          `json:"probe_score"`
	Threshold float64          `json:"threshold"`
}

func runRoute(cmd *cobra.Command, args []string) error {
	set, err := loadManifests()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	out := routeQuery(routing.Router{Matcher: matchModeMatcher()}, set, query, area())

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	printSection("Domain scores")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  DOMAIN\tHITS\tSEED\tSCORE")
	for _, s := range out.Scores {
		fmt.Fprintf(w, "  %s\t%d\t%.3f\t%.3f\n", s.Domain, s.PatternHits, s.SeedSim, s.Score)
	}
	_ = w.Flush()

	printSection("Decision")
	if out.Domain == "" {
		printMiss("", "no domain (empty manifest set)")
	} else {
		printOK("domain", out.Domain)
	}
	printInfo("task", out.Task)
	printInfo("packs", listOrNone(out.Packs))
	switch {
	case out.Required:
		printOK("attach", "yes (task requires sources)")
	case out.Attach:
		printOK("attach", fmt.Sprintf("yes (probe %.2f >= %.2f)", out.Probe, out.Threshold))
	default:
		printSkip("attach", fmt.Sprintf("no (probe %.2f < %.2f or no packs)", out.Probe, out.Threshold))
	}
	return nil
}

// routeQuery explains the routing of query without retrieving anything.
func routeQuery(r routing.Router, set *manifest.Set, query, area string) routeOut {
	out := routeOut{Query: query, Scores: []domainScoreOut{}}
	set.Each(func(id string, m *manifest.Manifest) bool {
		s := r.ScoreDomain(query, m)
		out.Scores = append(out.Scores, domainScoreOut{Domain: id, PatternHits: s.PatternHits, SeedSim: s.SeedSim, Score: s.Score})
		return true
	})

	route := r.PickDomain(query, set)
	out.Domain = route.ID
	out.Task = r.PickTask(query, route.Manifest)
	out.Packs = routing.PacksForTask(out.Task, area, route.Manifest)
	att := r.Attach(query, out.Task, out.Packs, route.Manifest)
	out.Attach, out.Required, out.Probe, out.Threshold = att.Attach, att.Required, att.Probe, att.Threshold
	return out
}
