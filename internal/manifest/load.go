package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LoadOptions controls Load.
type LoadOptions struct {
	// YAML parses .yaml/.yml files. When nil those files are skipped, the
	// same as any other unrecognized extension.
	YAML Parser

	// SkipMalformed logs and skips files that fail to parse instead of
	// aborting the whole load.
	SkipMalformed bool

	Logger *zap.Logger
}

// DefaultLoadOptions enables both JSON and YAML manifests.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{YAML: YAMLParser{}}
}

// Load reads every top-level manifest file in dir. Subdirectories and hidden
// files are not considered. Files are visited in lexical name order; the manifest id is
// the document's id field, else the file name without extension.
//
// A file that fails to parse aborts the load with an error matching
// ErrMalformed unless opts.SkipMalformed is set.
func Load(dir string, opts LoadOptions) (*Set, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest directory %s: %w", dir, err)
	}

	parsers := map[string]Parser{}
	register := func(p Parser) {
		for _, ext := range p.Extensions() {
			parsers[ext] = p
		}
	}
	register(JSONParser{})
	if opts.YAML != nil {
		register(opts.YAML)
	}

	set := NewSet()
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		p, ok := parsers[ext]
		if !ok {
			log.Debug("skipping unsupported manifest file", zap.String("path", path))
			continue
		}

		m, err := parseFile(path, p)
		if err != nil {
			if opts.SkipMalformed {
				log.Warn("skipping malformed manifest", zap.String("path", path), zap.Error(err))
				continue
			}
			return nil, err
		}
		if set.add(m) {
			log.Debug("manifest id redefined, later file wins",
				zap.String("id", m.ID), zap.String("path", path))
		}
	}

	log.Debug("manifests loaded", zap.String("dir", dir), zap.Int("count", set.Len()))
	return set, nil
}

func parseFile(path string, p Parser) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := p.Parse(data, &m); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if m.ID == "" {
		name := filepath.Base(path)
		m.ID = strings.TrimSuffix(name, filepath.Ext(name))
	}
	m.Path = path
	return &m, nil
}
