package engine

import (
	"context"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/retrieval"
)

// previewRunes is how much of the prompt a dry run shows.
const previewRunes = 800

// DryRunReport summarizes what would happen for a query without calling the
// model.
type DryRunReport struct {
	Query         string   `json:"query"`
	Domain        string   `json:"domain"`
	Task          string   `json:"task"`
	Attach        bool     `json:"attach_context"`
	Packs         []string `json:"packs"`
	Chunks        []string `json:"chunks"`
	Flags         []string `json:"flags"`
	PromptPreview string   `json:"prompt_preview"`
}

// DryRun decides, builds the prompt from the decided chunks and screens the
// input only. The prompt preview is cut to its first 800 characters, with
// "..." appended when cut.
func (e *Engine) DryRun(ctx context.Context, query, area string) (DryRunReport, error) {
	log := e.runLogger()
	d, err := e.decide(ctx, log, query, area)
	if err != nil {
		return DryRunReport{}, err
	}
	p := e.assembler.Build(query, d.Chunks, d.Manifest, area)
	screen := e.screener.Screen(query, "", safetyRules(d.Manifest))

	return DryRunReport{
		Query:         query,
		Domain:        d.Domain,
		Task:          d.Task,
		Attach:        d.Attach,
		Packs:         d.Packs,
		Chunks:        retrieval.DocIDs(d.Chunks),
		Flags:         screen.Flags,
		PromptPreview: preview(p, previewRunes),
	}, nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func safetyRules(m *manifest.Manifest) manifest.PhraseGroups {
	if m == nil {
		return nil
	}
	return m.SafetyRules
}
