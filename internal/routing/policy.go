package routing

import (
	"math"
	"strings"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/match"
)

// Probe score shape: any pack relation scores probeBase, each distinct pack
// keyword found in the query adds probeStep, capped at 1.
const (
	probeBase = 0.2
	probeStep = 0.15
)

// probeStopwords are pack-name words too generic to signal relevance.
var probeStopwords = map[string]struct{}{
	"area":   {},
	"routes": {},
	"rules":  {},
	"basic":  {},
	"first":  {},
	"aid":    {},
	"lines":  {},
}

// Attachment explains an attach decision.
type Attachment struct {
	Attach    bool
	Required  bool
	Probe     float64
	Threshold float64
}

// RequiresSources reports whether m marks task as always needing sources.
func RequiresSources(task string, m *manifest.Manifest) bool {
	return m.RequiresSourcesFor(task)
}

// ProbeScore is a cheap relevance estimate in [0, 1] of query against the
// resolved pack ids, without retrieval. No packs scores 0.
func (r Router) ProbeScore(query string, packs []string) float64 {
	if len(packs) == 0 {
		return 0
	}
	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	hits := 0
	for _, p := range packs {
		for _, kw := range match.Tokenize(p) {
			if _, stop := probeStopwords[kw]; stop {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			if r.Matcher.Contains(q, kw) {
				hits++
			}
		}
	}
	return math.Min(1.0, probeBase+probeStep*float64(hits))
}

// Attach decides whether retrieved context should be attached: always for
// tasks listed in requires_sources, otherwise when there is at least one pack
// and the probe score reaches the manifest threshold.
func (r Router) Attach(query, task string, packs []string, m *manifest.Manifest) Attachment {
	a := Attachment{
		Required:  RequiresSources(task, m),
		Probe:     r.ProbeScore(query, packs),
		Threshold: m.ProbeScoreMin(),
	}
	a.Attach = a.Required || (len(packs) > 0 && a.Probe >= a.Threshold)
	return a
}

// ShouldAttach is Attach reduced to its verdict.
func (r Router) ShouldAttach(query, task string, packs []string, m *manifest.Manifest) bool {
	return r.Attach(query, task, packs, m).Attach
}

// ProbeScore uses a substring Router.
func ProbeScore(query string, packs []string) float64 {
	return Router{}.ProbeScore(query, packs)
}

// ShouldAttach uses a substring Router.
func ShouldAttach(query, task string, packs []string, m *manifest.Manifest) bool {
	return Router{}.ShouldAttach(query, task, packs, m)
}
