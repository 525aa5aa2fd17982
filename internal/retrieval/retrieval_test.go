package retrieval

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunks(scores ...float64) []Chunk {
	out := make([]Chunk, len(scores))
	for i, s := range scores {
		out[i] = Chunk{DocID: string(rune('a' + i)), Score: s}
	}
	return out
}

func TestEnoughContext(t *testing.T) {
	gate := DefaultGate()

	strong, cov := Coverage(chunks(0.9, 0.8, 0.3), gate.MinScore)
	assert.Equal(t, 2, strong)
	assert.InDelta(t, 2.0/3.0, cov, 1e-9)
	assert.True(t, EnoughContext(chunks(0.9, 0.8, 0.3), gate))

	assert.False(t, EnoughContext(chunks(0.9, 0.3, 0.3), gate))
	assert.False(t, EnoughContext(nil, gate))
	assert.False(t, EnoughContext([]Chunk{}, GateOptions{}), "no evidence is never enough, even with zero thresholds")
	assert.True(t, EnoughContext(chunks(0.7), gate), "score equal to the threshold is strong")
	assert.False(t, EnoughContext(chunks(0.69), gate))
}

func TestRank(t *testing.T) {
	in := []Chunk{
		{DocID: "b", Score: 0.5},
		{DocID: "a", Score: 0.5},
		{DocID: "c", Score: 0.9},
		{DocID: "d", Score: 0.1},
	}
	got := Rank(in)
	assert.Equal(t, []string{"c", "a", "b", "d"}, DocIDs(got))
	assert.Equal(t, "b", in[0].DocID, "input is not reordered")

	again := Rank(got)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("ranking is not idempotent (-first +second):\n%s", diff)
	}
}

func TestRank_StableOnFullTies(t *testing.T) {
	in := []Chunk{
		{DocID: "x", Score: 1, Text: "first"},
		{DocID: "x", Score: 1, Text: "second"},
		{DocID: "w", Score: 1, Text: "third"},
	}
	got := Rank(in)
	assert.Equal(t, []string{"third", "first", "second"}, []string{got[0].Text, got[1].Text, got[2].Text})
}

func TestRank_IndependentOfInputOrder(t *testing.T) {
	a := []Chunk{{DocID: "1", Score: 0.3}, {DocID: "2", Score: 0.3}, {DocID: "3", Score: 0.8}}
	b := []Chunk{a[2], a[1], a[0]}
	assert.Equal(t, DocIDs(Rank(a)), DocIDs(Rank(b)))
	assert.Empty(t, Rank(nil))
}

func TestChunkJSON(t *testing.T) {
	c := Chunk{DocID: "d1", Text: "t", Score: 0.5, Source: "s.md", Span: Span{Start: 3, End: 9}}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"doc_id":"d1","text":"t","score":0.5,"source":"s.md","span":[3,9]}`, string(b))

	var noSpan Chunk
	require.NoError(t, json.Unmarshal([]byte(`{"doc_id":"d2"}`), &noSpan))
	assert.Equal(t, Span{}, noSpan.Span)

	var bad Chunk
	assert.Error(t, json.Unmarshal([]byte(`{"span":[1]}`), &bad))
}
