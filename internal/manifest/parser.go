package manifest

import (
	"bytes"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

var errEmptyDocument = errors.New("empty document")

// Parser decodes one structured document into a Manifest.
type Parser interface {
	// Extensions lists the lowercase file extensions (with dot) it handles.
	Extensions() []string
	Parse(data []byte, m *Manifest) error
}

// JSONParser parses plain JSON manifests. It is always available.
type JSONParser struct{}

func (JSONParser) Extensions() []string { return []string{".json"} }

func (JSONParser) Parse(data []byte, m *Manifest) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyDocument
	}
	return json.Unmarshal(data, m)
}

// YAMLParser parses human-authored YAML manifests.
type YAMLParser struct{}

func (YAMLParser) Extensions() []string { return []string{".yaml", ".yml"} }

func (YAMLParser) Parse(data []byte, m *Manifest) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return errEmptyDocument
	}
	return doc.Decode(m)
}
