package routing

import (
	"strings"

	"github.com/kamusis/kiosk/internal/manifest"
)

// PacksForTask resolves the pack templates declared for task, replacing every
// <AREA> with area. It returns an empty slice when the task has no packs.
func PacksForTask(task, area string, m *manifest.Manifest) []string {
	tpls := m.PackTemplates(task)
	out := make([]string, len(tpls))
	for i, p := range tpls {
		out[i] = strings.ReplaceAll(p, manifest.AreaPlaceholder, area)
	}
	return out
}
