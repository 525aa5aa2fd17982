// Package packindex is an offline, lexical Searcher over knowledge packs laid
// out on disk as <pack_dir>/<name>/<area>/... (pack id "name::area") or
// <pack_dir>/<name>/... (pack id "name").
package packindex

// Manifest describes an index directory and how to read it.
type Manifest struct {
	IndexVersion int      `json:"index_version"`
	CreatedAt    string   `json:"created_at"`
	PackDir      string   `json:"pack_dir"`
	Packs        []string `json:"packs"`
	ChunkCount   int      `json:"chunk_count"`
	ChunksFile   string   `json:"chunks_file"`
}

// Record is one chunk row in chunks.jsonl.
type Record struct {
	Pack   string `json:"pack"`
	DocID  string `json:"doc_id"`
	Source string `json:"source"`
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

const (
	indexVersion      = 1
	manifestFile      = "index_manifest.json"
	defaultChunksFile = "chunks.jsonl"
	packSeparator     = "::"
)
