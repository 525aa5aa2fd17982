package retrieval

import "context"

// DefaultTopK is how many chunks are requested from a Searcher.
const DefaultTopK = 6

// Searcher retrieves chunks for query from the given packs. Implementations
// own their timeout and retry discipline; callers add none.
type Searcher interface {
	Search(ctx context.Context, query string, packs []string, topK int) ([]Chunk, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, query string, packs []string, topK int) ([]Chunk, error)

func (f SearcherFunc) Search(ctx context.Context, query string, packs []string, topK int) ([]Chunk, error) {
	return f(ctx, query, packs, topK)
}

// NoopSearcher finds nothing. It stands in when no pack index is configured.
type NoopSearcher struct{}

func (NoopSearcher) Search(context.Context, string, []string, int) ([]Chunk, error) {
	return nil, nil
}
