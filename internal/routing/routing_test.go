package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/match"
)

func ptr(f float64) *float64 { return &f }

func disaster() *manifest.Manifest {
	return &manifest.Manifest{
		ID:      "disaster",
		Intents: manifest.Intents{Patterns: []string{"Evacuate", "shelter", "flood", "gas"}},
		EmbeddingSeeds: []string{
			"where is the nearest shelter",
			"is it safe to go back home after the flood",
		},
		TaskPatterns: manifest.PhraseGroups{
			{Label: "utilities_safety", Phrases: []string{"gas", "downed line", "electric"}},
			{Label: "evac_shelter", Phrases: []string{"evacuate", "shelter", "route"}},
			{Label: "cleanup", Phrases: []string{"mold", "debris"}},
		},
		Tasks:           []string{"evac_shelter", "utilities_safety", "cleanup"},
		RequiresSources: []string{"utilities_safety"},
		PacksByTask: map[string][]string{
			"evac_shelter":     {"evac_routes::<AREA>", "shelters::<AREA>"},
			"utilities_safety": {"utility_rules::<AREA>"},
			"cleanup":          {},
		},
	}
}

func health() *manifest.Manifest {
	return &manifest.Manifest{
		ID:             "health",
		Intents:        manifest.Intents{Patterns: []string{"fever", "bleeding", "burn"}},
		EmbeddingSeeds: []string{"my child has a fever", "how do i treat a burn"},
		TaskPatterns: manifest.PhraseGroups{
			{Label: "first_aid", Phrases: []string{"bleeding", "burn"}},
			{Label: "fever", Phrases: []string{"fever", "temperature"}},
		},
		Tasks:       []string{"first_aid"},
		PacksByTask: map[string][]string{"first_aid": {"basic_first_aid::<AREA>"}},
	}
}

func TestScoreDomain(t *testing.T) {
	got := ScoreDomain("Where is the nearest shelter? We must evacuate!", disaster())
	assert.Equal(t, 2, got.PatternHits, "patterns are lowercased before matching")
	assert.InDelta(t, 5.0/8.0, got.SeedSim, 1e-9)
	assert.InDelta(t, 2*PatternWeight+5.0/8.0*SeedWeight, got.Score, 1e-9)
}

func TestScoreDomain_PatternSpansTokens(t *testing.T) {
	m := &manifest.Manifest{Intents: manifest.Intents{Patterns: []string{"oak st", "ak s"}}}
	got := ScoreDomain("Tree down on OAK-ST!", m)
	assert.Equal(t, 2, got.PatternHits, "substrings of the joined token string count")
	assert.Equal(t, 0.0, got.SeedSim)
}

func TestScoreDomain_NoSeedsNoPatterns(t *testing.T) {
	got := ScoreDomain("anything at all", &manifest.Manifest{})
	assert.Equal(t, DomainScore{}, got)
}

func TestPickDomain(t *testing.T) {
	set := manifest.NewSet(disaster(), health())

	r := PickDomain("my child has a high fever", set)
	assert.Equal(t, "health", r.ID)
	assert.Same(t, r.Manifest, mustGet(t, set, "health"))

	r = PickDomain("flood water near the shelter", set)
	assert.Equal(t, "disaster", r.ID)
	assert.Greater(t, r.Score, 0.0)
}

func TestPickDomain_TieGoesToFirst(t *testing.T) {
	a := &manifest.Manifest{ID: "a", Intents: manifest.Intents{Patterns: []string{"water"}}}
	b := &manifest.Manifest{ID: "b", Intents: manifest.Intents{Patterns: []string{"water"}}}

	assert.Equal(t, "a", PickDomain("water", manifest.NewSet(a, b)).ID)
	assert.Equal(t, "b", PickDomain("water", manifest.NewSet(b, a)).ID)

	// Nothing matches: everyone scores 0 and the first manifest wins.
	r := PickDomain("zzz", manifest.NewSet(b, a))
	assert.Equal(t, "b", r.ID)
	assert.Equal(t, 0.0, r.Score)
}

func TestPickDomain_Deterministic(t *testing.T) {
	set := manifest.NewSet(disaster(), health())
	queries := []string{"", "gas", "burn near the shelter", "fever flood", "???"}
	for _, q := range queries {
		first := PickDomain(q, set).ID
		for i := 0; i < 20; i++ {
			require.Equal(t, first, PickDomain(q, set).ID, "query %q", q)
		}
	}
}

func TestPickDomain_EmptySet(t *testing.T) {
	for _, set := range []*manifest.Set{nil, manifest.NewSet()} {
		r := PickDomain("anything", set)
		assert.Equal(t, "", r.ID)
		assert.Equal(t, 0.0, r.Score)
		require.NotNil(t, r.Manifest)
		assert.Equal(t, manifest.Manifest{}, *r.Manifest)
	}
}

func TestPickTask(t *testing.T) {
	m := disaster()
	assert.Equal(t, "evac_shelter", PickTask("We need to EVACUATE, which route?", m))
	assert.Equal(t, "utilities_safety", PickTask("I smell gas near an electric pole", m))
	assert.Equal(t, "cleanup", PickTask("mold everywhere", m))
}

func TestPickTask_TiesFavorEarliestGroup(t *testing.T) {
	m := disaster()
	// gas (utilities_safety) and shelter (evac_shelter) both score 1.
	assert.Equal(t, "utilities_safety", PickTask("gas at the shelter", m))
	// Zero hits everywhere: the first group beats the -1 sentinel.
	assert.Equal(t, "utilities_safety", PickTask("hello", m))
}

func TestPickTask_Fallbacks(t *testing.T) {
	assert.Equal(t, "evac_shelter", PickTask("hello", &manifest.Manifest{Tasks: []string{"evac_shelter", "x"}}))
	assert.Equal(t, "general", PickTask("hello", &manifest.Manifest{}))
	assert.Equal(t, "general", PickTask("hello", nil))
}

func TestPickTask_PhrasesComparedAsWritten(t *testing.T) {
	m := &manifest.Manifest{TaskPatterns: manifest.PhraseGroups{
		{Label: "a", Phrases: []string{"Shelter"}},
		{Label: "b", Phrases: []string{"shelter"}},
	}}
	assert.Equal(t, "b", PickTask("SHELTER", m))
}

func TestPacksForTask(t *testing.T) {
	m := &manifest.Manifest{PacksByTask: map[string][]string{
		"evac_shelter": {"evac_routes::<AREA>", "shelters::<AREA>"},
		"double":       {"<AREA>/<AREA>"},
	}}
	assert.Equal(t, []string{"evac_routes::WARD-5", "shelters::WARD-5"}, PacksForTask("evac_shelter", "WARD-5", m))
	assert.Equal(t, []string{"W/W"}, PacksForTask("double", "W", m))
	assert.Empty(t, PacksForTask("missing", "WARD-5", m))
	assert.Empty(t, PacksForTask("missing", "WARD-5", nil))
}

func TestProbeScore(t *testing.T) {
	packs := []string{"evac_routes::WARD-5", "shelters::WARD-5"}
	// keywords: evac, ward, 5, shelters ("routes" is a stopword)
	assert.InDelta(t, 0.2, ProbeScore("hello there", packs), 1e-9)
	assert.InDelta(t, 0.35, ProbeScore("evac now", packs), 1e-9)
	assert.InDelta(t, 0.5, ProbeScore("Evac to shelters", packs), 1e-9)
	assert.InDelta(t, 0.8, ProbeScore("evac shelters in ward 5", packs), 1e-9)
	assert.Equal(t, 0.0, ProbeScore("evac shelters in ward 5", nil))
}

func TestProbeScore_StopwordsAndCap(t *testing.T) {
	assert.InDelta(t, 0.2, ProbeScore("first aid area rules", []string{"basic_first_aid::area", "rules::lines"}), 1e-9)

	packs := []string{"a::b", "c::d", "e::f", "g::h"}
	assert.Equal(t, 1.0, ProbeScore("abcdefgh", packs))
}

func TestProbeScore_DistinctKeywords(t *testing.T) {
	packs := []string{"shelters::x1", "shelters::x2"}
	assert.InDelta(t, 0.35, ProbeScore("shelters", packs), 1e-9)
}

func TestShouldAttach(t *testing.T) {
	m := disaster()

	// Zero packs, not required: never attaches.
	assert.False(t, ShouldAttach("evacuate shelters", "cleanup", nil, m))
	// Required task attaches regardless of packs.
	assert.True(t, ShouldAttach("anything", "utilities_safety", nil, m))

	packs := PacksForTask("evac_shelter", "WARD-5", m)
	assert.False(t, ShouldAttach("hello", "evac_shelter", packs, m), "base 0.2 < 0.33")
	assert.True(t, ShouldAttach("go to shelters", "evac_shelter", packs, m), "0.35 >= 0.33")

	m.Thresholds.ProbeScoreMin = ptr(0.2)
	assert.True(t, ShouldAttach("hello", "evac_shelter", packs, m))
	m.Thresholds.ProbeScoreMin = ptr(0)
	assert.False(t, ShouldAttach("hello", "evac_shelter", nil, m), "no packs means nothing to retrieve, even at a zero threshold")
}

func TestAttach_Explains(t *testing.T) {
	a := Router{}.Attach("go to shelters", "evac_shelter", []string{"shelters::W"}, disaster())
	assert.Equal(t, Attachment{Attach: true, Required: false, Probe: a.Probe, Threshold: 0.33}, a)
	assert.InDelta(t, 0.35, a.Probe, 1e-9)
}

func TestWordMatcher(t *testing.T) {
	r := Router{Matcher: match.Matcher{Mode: match.ModeWord}}
	m := &manifest.Manifest{TaskPatterns: manifest.PhraseGroups{
		{Label: "general", Phrases: []string{"help"}},
		{Label: "first_aid", Phrases: []string{"aid"}},
	}}
	assert.Equal(t, "general", r.PickTask("police raid", m))
	assert.Equal(t, "first_aid", r.PickTask("need aid", m))
	assert.Equal(t, "first_aid", PickTask("police raid", m), "substring mode finds aid in raid")
}

func mustGet(t *testing.T, set *manifest.Set, id string) *manifest.Manifest {
	t.Helper()
	m, ok := set.Get(id)
	require.True(t, ok)
	return m
}
