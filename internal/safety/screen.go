// Package safety flags unsafe or urgent content by matching the trigger
// phrases a domain manifest declares per flag label.
package safety

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/match"
)

// Result is the outcome of a screen.
type Result struct {
	OK      bool     `json:"ok"`
	Flags   []string `json:"flags"`
	Message string   `json:"message"`
}

// Screener screens text against safety rules. The zero value matches plain
// substrings.
type Screener struct {
	Matcher match.Matcher
}

// Screen raises every label in rules for which any trigger phrase occurs in
// input or output, comparing Unicode case-folded text. output may be empty
// when there is no model output yet. Flags keep rule order.
func (s Screener) Screen(input, output string, rules manifest.PhraseGroups) Result {
	in := fold(input)
	out := fold(output)

	flags := []string{}
	for _, rule := range rules {
		phrases := make([]string, len(rule.Phrases))
		for i, p := range rule.Phrases {
			phrases[i] = fold(p)
		}
		if s.Matcher.Any(in, phrases) || s.Matcher.Any(out, phrases) {
			flags = append(flags, rule.Label)
		}
	}

	if len(flags) == 0 {
		return Result{OK: true, Flags: flags, Message: "ok"}
	}
	return Result{OK: false, Flags: flags, Message: strings.Join(flags, "; ")}
}

// Screen uses a substring Screener.
func Screen(input, output string, rules manifest.PhraseGroups) Result {
	return Screener{}.Screen(input, output, rules)
}

// fold case-folds s. A Caser keeps state, so each call gets its own.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
