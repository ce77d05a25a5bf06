package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"no", "on", 2},
		{"starch", "starh", 1},
		{"starch", "stxxch", 2},
		{"mn²⁺", "mn²", 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Distance(c.a, c.b), "%q vs %q", c.a, c.b)
		assert.Equal(t, c.want, Distance(c.b, c.a), "%q vs %q", c.b, c.a)
	}
}

func TestBudget(t *testing.T) {
	assert.Equal(t, 0, Budget("no"))
	assert.Equal(t, 0, Budget("yes"))
	assert.Equal(t, 1, Budget("fe2+"))
	assert.Equal(t, 1, Budget("starch"))
	assert.Equal(t, 2, Budget("violets"))
	assert.Equal(t, 2, Budget("manganese(ii)"))
	assert.Equal(t, 0, Budget("  NO  "))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "starch mucilage", Normalize("  Starch Mucilage\t"))
	assert.Equal(t, "mn2+", Normalize("MN2+"))
}

func TestIsAcceptable_ShortAnswersNeedExactMatch(t *testing.T) {
	accepted := []string{"no"}
	assert.True(t, IsAcceptable("no", accepted))
	assert.True(t, IsAcceptable(" NO ", accepted))
	assert.False(t, IsAcceptable("on", accepted))
	assert.False(t, IsAcceptable("n", accepted))
}

func TestIsAcceptable_MediumAnswersTolerateOneEdit(t *testing.T) {
	accepted := []string{"starch"}
	assert.True(t, IsAcceptable("starch", accepted))
	assert.True(t, IsAcceptable("starh", accepted))
	assert.True(t, IsAcceptable("Starcj", accepted))
	assert.False(t, IsAcceptable("stxxch", accepted))
}

func TestIsAcceptable_LongAnswersTolerateTwoEdits(t *testing.T) {
	accepted := []string{"manganese(ii)"}
	assert.True(t, IsAcceptable("manganese(i)", accepted))
	assert.True(t, IsAcceptable("manganes(i)", accepted))
	assert.False(t, IsAcceptable("mangnes(i)", accepted))
}

func TestMatch_FreeCell(t *testing.T) {
	res := Match("anything at all", nil)
	assert.True(t, res.Accepted)
	assert.True(t, res.Free)
	assert.Empty(t, res.Matched)
}

func TestMatch_FirstMatchWins(t *testing.T) {
	// "oxalate" is one edit from the input and listed first, so it wins over
	// the exact entry that follows it.
	res := Match("oxalates", []string{"oxalate", "oxalates"})
	require.True(t, res.Accepted)
	assert.Equal(t, "oxalate", res.Matched)
	assert.Equal(t, 1, res.Distance)

	// fe3+ has budget 1 and "fe" is two edits away, so it falls through.
	res = Match("fe", []string{"fe3+", "fe"})
	require.True(t, res.Accepted)
	assert.Equal(t, "fe", res.Matched)
	assert.Zero(t, res.Distance)
}

func TestMatch_Rejected(t *testing.T) {
	res := Match("blue", []string{"purple", "violet", "deep purple"})
	assert.False(t, res.Accepted)
	assert.False(t, res.Free)
	assert.Empty(t, res.Matched)
}
