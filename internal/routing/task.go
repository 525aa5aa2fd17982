package routing

import (
	"strings"

	"github.com/kamusis/kiosk/internal/manifest"
)

// PickTask chooses a task label inside m. It lowercases the raw query (no
// tokenization) and counts, per task-pattern group, the phrases contained in
// it. Groups are scanned in document order and only a strictly greater count
// replaces the current best, starting from -1: the first group therefore wins
// when nothing matches. Without any group the first declared task is used,
// else "general".
//
// Phrases are compared as written; a phrase with upper-case letters can never
// match the lowercased query.
func (r Router) PickTask(query string, m *manifest.Manifest) string {
	if m == nil {
		return manifest.DefaultTask
	}
	q := strings.ToLower(query)
	best, bestScore := "", -1
	for _, g := range m.TaskPatterns {
		if sc := r.Matcher.Count(q, g.Phrases); sc > bestScore {
			best, bestScore = g.Label, sc
		}
	}
	if best == "" {
		return m.DefaultTaskLabel()
	}
	return best
}

// PickTask uses a substring Router.
func PickTask(query string, m *manifest.Manifest) string {
	return Router{}.PickTask(query, m)
}
