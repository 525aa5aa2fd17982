package match

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects how a phrase is located inside a text.
type Mode string

const (
	// ModeSubstring matches anywhere, so "aid" is found inside "raid".
	ModeSubstring Mode = "substring"
	// ModeWord requires a non-alphanumeric rune (or the text edge) on both
	// sides of the phrase.
	ModeWord Mode = "word"
)

// ParseMode converts a config value into a Mode. The empty string selects
// ModeSubstring.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSubstring:
		return ModeSubstring, nil
	case ModeWord:
		return ModeWord, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, ModeSubstring, ModeWord)
	}
}

// Matcher tests phrase containment. The zero value uses ModeSubstring.
// Callers are expected to case-fold both sides beforehand.
type Matcher struct {
	Mode Mode
}

// Contains reports whether needle occurs in haystack. An empty needle never
// matches.
func (m Matcher) Contains(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	if m.Mode != ModeWord {
		return strings.Contains(haystack, needle)
	}
	off := 0
	for off <= len(haystack) {
		i := strings.Index(haystack[off:], needle)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(needle)
		if wordEdgeBefore(haystack, start) && wordEdgeAfter(haystack, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		off = start + size
	}
	return false
}

// Count returns how many of needles occur in haystack. Duplicated needles
// are counted once per occurrence in the list.
func (m Matcher) Count(haystack string, needles []string) int {
	n := 0
	for _, p := range needles {
		if m.Contains(haystack, p) {
			n++
		}
	}
	return n
}

// Any reports whether at least one of needles occurs in haystack.
func (m Matcher) Any(haystack string, needles []string) bool {
	for _, p := range needles {
		if m.Contains(haystack, p) {
			return true
		}
	}
	return false
}

func wordEdgeBefore(s string, i int) bool {
	if i <= 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func wordEdgeAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
