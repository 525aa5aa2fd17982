package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/manifest"
)

var manifestsCmd = &cobra.Command{
	Use:   "manifests",
	Short: "List the loaded domain manifests",
	Args:  cobra.NoArgs,
	RunE:  runManifests,
}

func init() {
	rootCmd.AddCommand(manifestsCmd)
}

type manifestOut struct {
	ID              string              `json:"id"`
	Path            string              `json:"path"`
	Tasks           []string            `json:"tasks"`
	RequiresSources []string            `json:"requires_sources"`
	PacksByTask     map[string][]string `json:"packs_by_task"`
	SafetyFlags     []string            `json:"safety_flags"`
	ProbeScoreMin   float64             `json:"probe_score_min"`
}

func runManifests(cmd *cobra.Command, _ []string) error {
	set, err := loadManifests()
	if err != nil {
		return err
	}

	out := make([]manifestOut, 0, set.Len())
	set.Each(func(id string, m *manifest.Manifest) bool {
		out = append(out, manifestOut{
			ID:              id,
			Path:            m.Path,
			Tasks:           m.Tasks,
			RequiresSources: m.RequiresSources,
			PacksByTask:     m.PacksByTask,
			SafetyFlags:     m.SafetyRules.Labels(),
			ProbeScoreMin:   m.ProbeScoreMin(),
		})
		return true
	})
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	printSection(fmt.Sprintf("Manifests (%d) in %s", len(out), cfg.ManifestDir))
	for _, m := range out {
		printOK(m.ID, m.Path)
		printInfo("tasks", listOrNone(m.Tasks))
		printInfo("requires sources", listOrNone(m.RequiresSources))
		tasks := make([]string, 0, len(m.PacksByTask))
		for t := range m.PacksByTask {
			tasks = append(tasks, t)
		}
		sort.Strings(tasks)
		for _, t := range tasks {
			printInfo("packs "+t, listOrNone(m.PacksByTask[t]))
		}
		printInfo("safety", listOrNone(m.SafetyFlags))
		printInfo("threshold", fmt.Sprintf("%.2f", m.ProbeScoreMin))
	}
	return nil
}
