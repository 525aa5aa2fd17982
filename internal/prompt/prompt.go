// Package prompt renders the text handed to the model: the domain header,
// the user question and either numbered references or a note that none are
// attached.
package prompt

import (
	"fmt"
	"strings"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/retrieval"
)

// DefaultMaxReferences caps how many chunks are listed as references.
const DefaultMaxReferences = 6

const (
	questionHeading   = "## User Question"
	referencesHeading = "## References"
	noReferences      = "## No external references attached"
	citeHint          = "Use the references when relevant and cite [1], [2], ... inline."
	unknownSource     = "unknown"
)

// Join selects the separator placed between prompt lines.
type Join string

const (
	// JoinNewline separates lines with "\n".
	JoinNewline Join = "newline"
	// JoinLiteral separates lines with the two characters `\` and `n`, the
	// format older consumers expect.
	JoinLiteral Join = "literal"
)

// ParseJoin converts a config value into a Join. The empty string selects
// JoinNewline.
func ParseJoin(s string) (Join, error) {
	switch Join(strings.ToLower(strings.TrimSpace(s))) {
	case "", JoinNewline:
		return JoinNewline, nil
	case JoinLiteral:
		return JoinLiteral, nil
	default:
		return "", fmt.Errorf("unknown prompt join %q (want %q or %q)", s, JoinNewline, JoinLiteral)
	}
}

// Token returns the separator string.
func (j Join) Token() string {
	if j == JoinLiteral {
		return `\n`
	}
	return "\n"
}

// Assembler builds prompts. The zero value joins with newlines and lists up
// to DefaultMaxReferences references.
type Assembler struct {
	Join          Join
	MaxReferences int
}

// Lines returns the prompt lines for query. The header is the manifest's
// template with the area placeholder replaced; a nil manifest uses the
// default template. Every occurrence of the join token inside a line is
// replaced by a single space so Split(Build(...)) returns these lines.
func (a Assembler) Lines(query string, chunks []retrieval.Chunk, m *manifest.Manifest, area string) []string {
	header := strings.ReplaceAll(m.Template(), manifest.AreaPlaceholder, area)
	lines := []string{header, "", questionHeading, strings.TrimSpace(query), ""}

	if len(chunks) == 0 {
		lines = append(lines, noReferences)
	} else {
		lines = append(lines, referencesHeading)
		for i, c := range chunks[:min(len(chunks), a.maxReferences())] {
			src := c.Source
			if src == "" {
				src = unknownSource
			}
			lines = append(lines, fmt.Sprintf("[%d] %s  (source: %s chars %d-%d)",
				i+1, strings.TrimSpace(c.Text), src, c.Span.Start, c.Span.End))
		}
		lines = append(lines, "", citeHint)
	}

	tok := a.Join.Token()
	for i, l := range lines {
		lines[i] = collapse(l, tok)
	}
	return lines
}

// Build renders the prompt as a single string.
func (a Assembler) Build(query string, chunks []retrieval.Chunk, m *manifest.Manifest, area string) string {
	return strings.Join(a.Lines(query, chunks, m, area), a.Join.Token())
}

// Split breaks a built prompt back into its lines.
func Split(s string, join Join) []string {
	return strings.Split(s, join.Token())
}

func (a Assembler) maxReferences() int {
	if a.MaxReferences <= 0 {
		return DefaultMaxReferences
	}
	return a.MaxReferences
}

// collapse replaces each occurrence of tok in s with a space.
func collapse(s, tok string) string {
	return strings.ReplaceAll(s, tok, " ")
}
