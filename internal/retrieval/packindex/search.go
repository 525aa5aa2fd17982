package packindex

import (
	"context"
	"math"

	"github.com/kamusis/kiosk/internal/match"
	"github.com/kamusis/kiosk/internal/retrieval"
)

// Index is a loaded pack index. It is read-only and safe for concurrent
// searches.
type Index struct {
	Manifest Manifest
	records  []Record
	tokens   []map[string]struct{}
	byPack   map[string][]int
}

var _ retrieval.Searcher = (*Index)(nil)

func newIndex(m Manifest, records []Record) *Index {
	idx := &Index{
		Manifest: m,
		records:  records,
		tokens:   make([]map[string]struct{}, len(records)),
		byPack:   make(map[string][]int),
	}
	for i, r := range records {
		idx.tokens[i] = tokenSet(match.Tokenize(r.Text))
		idx.byPack[r.Pack] = append(idx.byPack[r.Pack], i)
	}
	return idx
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int { return len(idx.records) }

// PackCount returns how many chunks pack holds.
func (idx *Index) PackCount(pack string) int { return len(idx.byPack[pack]) }

// Search scores the chunks of the requested packs by lexical overlap with
// query (Ochiai coefficient over distinct tokens, in [0, 1]) and returns the
// topK best, ranked. Chunks sharing no token with the query are dropped.
// Unknown packs contribute nothing.
func (idx *Index) Search(ctx context.Context, query string, packs []string, topK int) ([]retrieval.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = retrieval.DefaultTopK
	}
	q := tokenSet(match.Tokenize(query))
	if len(q) == 0 {
		return nil, nil
	}

	seen := map[string]struct{}{}
	var out []retrieval.Chunk
	for _, p := range packs {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		for _, i := range idx.byPack[p] {
			score := ochiai(q, idx.tokens[i])
			if score <= 0 {
				continue
			}
			r := idx.records[i]
			out = append(out, retrieval.Chunk{
				DocID:  r.DocID,
				Text:   r.Text,
				Score:  score,
				Source: r.Source,
				Span:   retrieval.Span{Start: r.Start, End: r.End},
				Pack:   r.Pack,
			})
		}
	}

	ranked := retrieval.Rank(out)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

func tokenSet(toks []string) map[string]struct{} {
	m := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		m[t] = struct{}{}
	}
	return m
}

// ochiai returns |A ∩ B| / sqrt(|A| |B|).
func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	return float64(inter) / (math.Sqrt(float64(len(a))) * math.Sqrt(float64(len(b))))
}
