package retrieval

// Default confidence gate thresholds.
const (
	DefaultMinScore    = 0.7
	DefaultMinCoverage = 0.6
)

// GateOptions holds the confidence gate thresholds.
type GateOptions struct {
	// MinScore is the score at or above which a chunk counts as strong.
	MinScore float64
	// MinCoverage is the minimum fraction of strong chunks.
	MinCoverage float64
}

// DefaultGate returns the default thresholds.
func DefaultGate() GateOptions {
	return GateOptions{MinScore: DefaultMinScore, MinCoverage: DefaultMinCoverage}
}

// Coverage counts the strong chunks and the fraction they represent.
// No chunks yields (0, 0).
func Coverage(chunks []Chunk, minScore float64) (strong int, coverage float64) {
	if len(chunks) == 0 {
		return 0, 0
	}
	for _, c := range chunks {
		if c.Score >= minScore {
			strong++
		}
	}
	return strong, float64(strong) / float64(len(chunks))
}

// EnoughContext reports whether chunks can be trusted as grounding: at least
// one strong chunk and enough coverage. No chunks is never enough.
func EnoughContext(chunks []Chunk, opts GateOptions) bool {
	strong, coverage := Coverage(chunks, opts.MinScore)
	return strong > 0 && coverage >= opts.MinCoverage
}
