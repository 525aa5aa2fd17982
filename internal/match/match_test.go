package match

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenRe = regexp.MustCompile(`^[a-z0-9]+$`)

func TestTokenize_Shapes(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"!!!,,,;;;",
		"N95 mask!",
		"Evacuate WARD-5 now",
		"café naïve 東京 42",
		"tab\tsep\nline",
		"ÀBC-def_GHI",
	}
	for _, in := range inputs {
		for _, tok := range Tokenize(in) {
			assert.Regexp(t, tokenRe, tok, "input %q", in)
		}
	}
}

func TestTokenize_Examples(t *testing.T) {
	assert.Equal(t, []string{"n95", "mask"}, Tokenize("N95 mask!"))
	assert.Equal(t, []string{"evacuate", "ward", "5", "now"}, Tokenize("Evacuate WARD-5 now"))
	assert.Equal(t, []string{"caf", "na", "ve", "42"}, Tokenize("café naïve 東京 42"))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("?! -- ..."))
}

func TestJoined(t *testing.T) {
	assert.Equal(t, "smell gas near line", Joined("Smell  GAS, near-line"))
	assert.Equal(t, "", Joined(""))
}

func TestJaccard(t *testing.T) {
	a := Tokenize("gas smell near the pipeline")
	b := Tokenize("smell of gas at home")

	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 0.0, Jaccard(nil, a))
	assert.Equal(t, 0.0, Jaccard(a, nil))
	assert.Equal(t, 0.0, Jaccard(nil, nil))

	// {gas, smell} / {gas, smell, near, the, pipeline, of, at, home}
	assert.InDelta(t, 2.0/8.0, Jaccard(a, b), 1e-12)
}

func TestJaccard_IgnoresDuplicates(t *testing.T) {
	got := Jaccard([]string{"oak", "oak", "st"}, []string{"oak", "st"})
	assert.Equal(t, 1.0, got)
}

func TestJaccard_Range(t *testing.T) {
	samples := []string{"", "a", "a b", "b c d", "a a a", "x y z a"}
	for _, x := range samples {
		for _, y := range samples {
			v := Jaccard(Tokenize(x), Tokenize(y))
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSubstring, m)

	m, err = ParseMode(" Word ")
	require.NoError(t, err)
	assert.Equal(t, ModeWord, m)

	_, err = ParseMode("regex")
	assert.Error(t, err)
}

func TestMatcher_Substring(t *testing.T) {
	var m Matcher
	assert.True(t, m.Contains("police raid tonight", "aid"))
	assert.True(t, m.Contains("smell gas", "smell gas"))
	assert.False(t, m.Contains("anything", ""))
	assert.Equal(t, 2, m.Count("gas leak and fire", []string{"gas", "fire", "flood"}))
	assert.True(t, m.Any("downed line on oak st", []string{"smell gas", "downed line"}))
}

func TestMatcher_Word(t *testing.T) {
	m := Matcher{Mode: ModeWord}
	assert.False(t, m.Contains("police raid tonight", "aid"))
	assert.True(t, m.Contains("need first aid now", "aid"))
	assert.True(t, m.Contains("aid", "aid"))
	assert.True(t, m.Contains("raid, then aid.", "aid"))
	assert.True(t, m.Contains("i smell gas!", "smell gas"))
	assert.False(t, m.Contains("smell gasoline", "smell gas"))
	assert.False(t, m.Contains("ñaid", "aid"))
}
