package packindex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BuildOptions controls index building.
type BuildOptions struct {
	PackDir string
	OutDir  string
	// Extensions lists the document extensions to index; defaults to .md and .txt.
	Extensions []string
	Logger     *zap.Logger
}

// Build indexes every document under opts.PackDir and writes the index to
// opts.OutDir. Callers that replace a live index should use BuildAndSwap.
func Build(ctx context.Context, opts BuildOptions) (*Index, error) {
	if opts.PackDir == "" {
		return nil, fmt.Errorf("pack dir is required")
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("out dir is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".md", ".txt"}
	}

	info, err := os.Stat(opts.PackDir)
	if err != nil {
		return nil, fmt.Errorf("cannot stat pack dir %s: %w", opts.PackDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pack path is not a directory: %s", opts.PackDir)
	}

	var records []Record
	packSeen := map[string]struct{}{}
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != opts.PackDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExt(d.Name(), exts) {
			return nil
		}
		rel, err := filepath.Rel(opts.PackDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		pack, ok := packForPath(rel)
		if !ok {
			log.Debug("skipping document outside any pack", zap.String("path", rel))
			return nil
		}

		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		content := string(b)
		meta, body, offset := splitFrontmatter(content)
		source := strings.TrimSpace(meta["source"])
		if source == "" {
			source = rel
		}

		recs := chunkDocument(pack, rel, source, content, body, offset)
		if len(recs) > 0 {
			packSeen[pack] = struct{}{}
		}
		records = append(records, recs...)
		return nil
	}
	if err := filepath.WalkDir(opts.PackDir, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan packs: %w", err)
	}

	packs := make([]string, 0, len(packSeen))
	for p := range packSeen {
		packs = append(packs, p)
	}
	sort.Strings(packs)

	m := Manifest{
		IndexVersion: indexVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		PackDir:      opts.PackDir,
		Packs:        packs,
		ChunkCount:   len(records),
		ChunksFile:   defaultChunksFile,
	}
	if err := Write(opts.OutDir, m, records); err != nil {
		return nil, err
	}
	log.Info("pack index built",
		zap.String("out", opts.OutDir), zap.Int("packs", len(packs)), zap.Int("chunks", len(records)))
	return newIndex(m, records), nil
}

// BuildAndSwap builds into a temporary sibling of opts.OutDir and atomically
// replaces opts.OutDir with it, holding an exclusive file lock so concurrent
// builds do not interleave.
func BuildAndSwap(ctx context.Context, opts BuildOptions, lockTimeout time.Duration) (*Index, error) {
	dest := opts.OutDir
	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", parent, err)
	}

	unlock, err := acquireLock(ctx, dest+".lock", lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tmp, err := os.MkdirTemp(parent, ".packindex-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp index dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	opts.OutDir = tmp
	idx, err := Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("index build failed: %w", err)
	}
	if err := AtomicSwap(tmp, dest); err != nil {
		return nil, fmt.Errorf("cannot install index: %w", err)
	}
	return idx, nil
}

// AtomicSwap replaces destDir with srcDir by renaming.
func AtomicSwap(srcDir, destDir string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	backup := destDir + ".bak"
	_ = os.RemoveAll(backup)
	if _, err := os.Stat(destDir); err == nil {
		if err := os.Rename(destDir, backup); err != nil {
			return err
		}
	}
	if err := os.Rename(srcDir, destDir); err != nil {
		// rollback best-effort
		if _, stErr := os.Stat(backup); stErr == nil {
			_ = os.Rename(backup, destDir)
		}
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}

// packForPath maps a slash-separated path relative to the pack dir to a pack
// id: name/area/... -> "name::area", name/file -> "name".
func packForPath(rel string) (string, bool) {
	parts := strings.Split(rel, "/")
	switch {
	case len(parts) >= 3:
		return parts[0] + packSeparator + parts[1], true
	case len(parts) == 2:
		return parts[0], true
	default:
		return "", false
	}
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
