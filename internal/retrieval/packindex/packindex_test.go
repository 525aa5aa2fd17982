package packindex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/kiosk/internal/retrieval"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const guide = "---\nsource: Ward guide\n---\nFirst para.\n\nSecond para línea.\n"

func setupPacks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "shelters/WARD-5/list.md", "Shelter at the Oak Street school gym.\n\nSecond shelter at the temple hall, open all night.\n")
	writeFile(t, dir, "shelters/WARD-6/list.md", "Shelter at the river community hall.\n")
	writeFile(t, dir, "evac_routes/WARD-5/routes.txt", "Evacuate north on Oak Street towards the highway.\n")
	writeFile(t, dir, "evac_routes/WARD-5/guide.md", guide)
	writeFile(t, dir, "first_aid/basics.md", "Apply pressure to stop bleeding.\n")
	writeFile(t, dir, "first_aid/image.png", "binary")
	writeFile(t, dir, "README.md", "not inside a pack")
	writeFile(t, dir, ".git/config.md", "hidden")
	return dir
}

func TestBuildAndLoad(t *testing.T) {
	packs := setupPacks(t)
	out := filepath.Join(t.TempDir(), "index")

	built, err := Build(context.Background(), BuildOptions{PackDir: packs, OutDir: out})
	require.NoError(t, err)
	assert.Equal(t, []string{"evac_routes::WARD-5", "first_aid", "shelters::WARD-5", "shelters::WARD-6"}, built.Manifest.Packs)
	assert.Equal(t, 7, built.Len())
	assert.Equal(t, 2, built.PackCount("shelters::WARD-5"))
	assert.Equal(t, 0, built.PackCount("nope"))

	loaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, built.Manifest, loaded.Manifest)
	assert.Equal(t, built.records, loaded.records)
}

func TestBuild_SpansAndFrontmatterSource(t *testing.T) {
	packs := t.TempDir()
	writeFile(t, packs, "evac_routes/WARD-5/guide.md", guide)
	idx, err := Build(context.Background(), BuildOptions{PackDir: packs, OutDir: t.TempDir()})
	require.NoError(t, err)
	require.Len(t, idx.records, 2)

	runes := []rune(guide)
	for _, r := range idx.records {
		assert.Equal(t, "Ward guide", r.Source)
		assert.Equal(t, r.Text, string(runes[r.Start:r.End]))
	}
	assert.Equal(t, "evac_routes/WARD-5/guide.md#0", idx.records[0].DocID)
	assert.Equal(t, 27, idx.records[0].Start)
	assert.Equal(t, 38, idx.records[0].End)
	assert.Equal(t, 40, idx.records[1].Start)
	assert.Equal(t, 58, idx.records[1].End)
}

func TestSearch(t *testing.T) {
	packs := setupPacks(t)
	idx, err := Build(context.Background(), BuildOptions{PackDir: packs, OutDir: t.TempDir()})
	require.NoError(t, err)

	got, err := idx.Search(context.Background(), "which shelter is open at night?", []string{"shelters::WARD-5", "evac_routes::WARD-5"}, 6)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "shelters/WARD-5/list.md#1", got[0].DocID)
	for _, c := range got {
		assert.NotEqual(t, "shelters::WARD-6", c.Pack, "only requested packs are searched")
		assert.Greater(t, c.Score, 0.0)
		assert.LessOrEqual(t, c.Score, 1.0)
	}
	assert.Equal(t, retrieval.DocIDs(retrieval.Rank(got)), retrieval.DocIDs(got), "results come back ranked")

	top1, err := idx.Search(context.Background(), "shelter oak street", []string{"shelters::WARD-5", "evac_routes::WARD-5"}, 1)
	require.NoError(t, err)
	assert.Len(t, top1, 1)

	none, err := idx.Search(context.Background(), "!!!", []string{"shelters::WARD-5"}, 6)
	require.NoError(t, err)
	assert.Empty(t, none)

	unknown, err := idx.Search(context.Background(), "shelter", []string{"nope::X"}, 6)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestSearch_CanceledContext(t *testing.T) {
	idx := newIndex(Manifest{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := idx.Search(ctx, "x", []string{"p"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none"))
	assert.True(t, errors.Is(err, ErrIndexMissing))
}

func TestLoad_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, Manifest{}, []Record{{Pack: "p", DocID: "d", Text: "t"}}))
	writeFile(t, dir, defaultChunksFile, "")
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestBuildAndSwap_ReplacesIndex(t *testing.T) {
	packs := setupPacks(t)
	out := filepath.Join(t.TempDir(), "search", "index")

	first, err := BuildAndSwap(context.Background(), BuildOptions{PackDir: packs, OutDir: out}, time.Second)
	require.NoError(t, err)

	writeFile(t, packs, "shelters/WARD-7/list.md", "New shelter.\n")
	second, err := BuildAndSwap(context.Background(), BuildOptions{PackDir: packs, OutDir: out}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, first.Len()+1, second.Len())

	loaded, err := Load(out)
	require.NoError(t, err)
	assert.Contains(t, loaded.Manifest.Packs, "shelters::WARD-7")

	_, err = os.Stat(out + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestBuildAndSwap_Locked(t *testing.T) {
	packs := setupPacks(t)
	out := filepath.Join(t.TempDir(), "index")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	held := flock.New(out + ".lock")
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer held.Unlock()

	_, err = BuildAndSwap(context.Background(), BuildOptions{PackDir: packs, OutDir: out}, 300*time.Millisecond)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestPackForPath(t *testing.T) {
	p, ok := packForPath("evac_routes/WARD-5/a/b.md")
	assert.True(t, ok)
	assert.Equal(t, "evac_routes::WARD-5", p)
	p, ok = packForPath("first_aid/a.md")
	assert.True(t, ok)
	assert.Equal(t, "first_aid", p)
	_, ok = packForPath("a.md")
	assert.False(t, ok)
}

func TestSplitFrontmatter(t *testing.T) {
	meta, body, off := splitFrontmatter(guide)
	assert.Equal(t, "Ward guide", meta["source"])
	assert.Equal(t, "First para.\n\nSecond para línea.\n", body)
	assert.Equal(t, len(guide)-len(body), off)

	meta, body, off = splitFrontmatter("no frontmatter")
	assert.Empty(t, meta)
	assert.Equal(t, "no frontmatter", body)
	assert.Equal(t, 0, off)
}
