// Package match holds the text primitives shared by routing, policy and
// safety: tokenization, set similarity and phrase containment.
package match

import "strings"

// Tokenize splits s into maximal runs of ASCII letters and digits, lowercased.
// Every other byte (whitespace, punctuation, symbols and all non-ASCII runes)
// is a separator and never appears in a token. Empty input yields no tokens.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isASCIIAlnum(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, strings.ToLower(s[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, strings.ToLower(s[start:]))
	}
	return out
}

// Joined returns the tokens of s joined by single spaces.
func Joined(s string) string {
	return strings.Join(Tokenize(s), " ")
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
