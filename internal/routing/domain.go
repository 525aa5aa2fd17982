// Package routing picks a domain and a task for a query and decides which
// knowledge packs apply and whether retrieved context should be attached.
// Every function here is pure and safe for concurrent use against a shared
// manifest.Set.
package routing

import (
	"strings"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/match"
)

// Domain score weights. Only the ranking they produce matters.
const (
	PatternWeight = 0.6
	SeedWeight    = 0.8
)

// Router carries the phrase matching mode. The zero value matches plain
// substrings.
type Router struct {
	Matcher match.Matcher
}

// Route is the domain chosen for a query.
type Route struct {
	ID       string
	Manifest *manifest.Manifest
	Score    float64
}

// DomainScore breaks a domain score into its two signals.
type DomainScore struct {
	PatternHits int
	SeedSim     float64
	Score       float64
}

// ScoreDomain scores how well query fits m: intent patterns found in the
// space-joined query tokens, plus the best Jaccard overlap with any seed
// sentence.
func (r Router) ScoreDomain(query string, m *manifest.Manifest) DomainScore {
	toks := match.Tokenize(query)
	return r.scoreTokens(toks, m)
}

func (r Router) scoreTokens(toks []string, m *manifest.Manifest) DomainScore {
	if m == nil {
		return DomainScore{}
	}
	joined := strings.Join(toks, " ")
	hits := r.Matcher.Count(joined, m.LowerPatterns())

	seedSim := 0.0
	for _, seed := range m.EmbeddingSeeds {
		if sim := match.Jaccard(toks, match.Tokenize(seed)); sim > seedSim {
			seedSim = sim
		}
	}
	return DomainScore{
		PatternHits: hits,
		SeedSim:     seedSim,
		Score:       float64(hits)*PatternWeight + seedSim*SeedWeight,
	}
}

// PickDomain scores every manifest in set and returns the best. Only a
// strictly higher score displaces the current best, so ties go to the
// manifest that comes first in the set. An empty set yields an empty Route
// with a non-nil, empty manifest.
func (r Router) PickDomain(query string, set *manifest.Set) Route {
	best := Route{Manifest: &manifest.Manifest{}}
	if set.Len() == 0 {
		return best
	}
	toks := match.Tokenize(query)
	first := true
	set.Each(func(id string, m *manifest.Manifest) bool {
		s := r.scoreTokens(toks, m).Score
		if first || s > best.Score {
			best = Route{ID: id, Manifest: m, Score: s}
			first = false
		}
		return true
	})
	return best
}

// ScoreDomain uses a substring Router.
func ScoreDomain(query string, m *manifest.Manifest) DomainScore {
	return Router{}.ScoreDomain(query, m)
}

// PickDomain uses a substring Router.
func PickDomain(query string, set *manifest.Set) Route {
	return Router{}.PickDomain(query, set)
}
