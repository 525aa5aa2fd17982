package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PhraseGroup is one labelled list of phrases, e.g. a task and its patterns
// or a safety flag and its trigger phrases.
type PhraseGroup struct {
	Label   string
	Phrases []string
}

// PhraseGroups is a mapping from label to phrases that keeps document order.
// Task selection and safety flags both depend on that order, so it is decoded
// from the key order of the source document rather than into a Go map.
type PhraseGroups []PhraseGroup

// Lookup returns the phrases for label.
func (g PhraseGroups) Lookup(label string) ([]string, bool) {
	for _, pg := range g {
		if pg.Label == label {
			return pg.Phrases, true
		}
	}
	return nil, false
}

// Labels returns the labels in order.
func (g PhraseGroups) Labels() []string {
	out := make([]string, len(g))
	for i, pg := range g {
		out[i] = pg.Label
	}
	return out
}

// set replaces the phrases of an existing label in place, or appends.
func (g PhraseGroups) set(label string, phrases []string) PhraseGroups {
	for i := range g {
		if g[i].Label == label {
			g[i].Phrases = phrases
			return g
		}
	}
	return append(g, PhraseGroup{Label: label, Phrases: phrases})
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (g *PhraseGroups) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected an object of label -> phrases, got %v", tok)
	}
	var out PhraseGroups
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := kt.(string)
		var phrases []string
		if err := dec.Decode(&phrases); err != nil {
			return fmt.Errorf("phrases for %q: %w", label, err)
		}
		out = out.set(label, phrases)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = out
	return nil
}

// MarshalJSON encodes the groups as a JSON object in order.
func (g PhraseGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pg := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(pg.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(pg.Phrases)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (g *PhraseGroups) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		*g = nil
		return nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of label -> phrases", n.Line)
	}
	var out PhraseGroups
	for i := 0; i+1 < len(n.Content); i += 2 {
		var label string
		if err := n.Content[i].Decode(&label); err != nil {
			return err
		}
		var phrases []string
		if err := n.Content[i+1].Decode(&phrases); err != nil {
			return fmt.Errorf("phrases for %q: %w", label, err)
		}
		out = out.set(label, phrases)
	}
	*g = out
	return nil
}
