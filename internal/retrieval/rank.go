package retrieval

import "sort"

// Rank returns a copy of chunks sorted by score (descending), then by doc id
// (ascending). The sort is stable, so chunks equal on both keys keep their
// input order and ranking a ranked slice changes nothing.
func Rank(chunks []Chunk) []Chunk {
	out := make([]Chunk, len(chunks))
	copy(out, chunks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].DocID < out[j].DocID
		}
		return out[i].Score > out[j].Score
	})
	return out
}
