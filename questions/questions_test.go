package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, "Redox titrants", s.Name)
	assert.Equal(t, "KMnO4", s.Topic(0))
	assert.Equal(t, "KBrO3", s.Topic(5))
	assert.Equal(t, "What is the color of", s.Question(2))
	assert.Len(t, s.Answers, Size*Size)
	assert.Equal(t, []string{"starch", "starch mucilage"}, s.Accepted(3, 3))
	assert.Equal(t, []string{"yes", "light sensitive", "mno2 catalyzes"}, s.Accepted(0, 0))
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Topics[0] = "changed"
	a.Answers["0-0"][0] = "changed"

	b := Default()
	assert.Equal(t, "KMnO4", b.Topic(0))
	assert.Equal(t, "yes", b.Accepted(0, 0)[0])
}

func TestAccepted_ReturnsCopy(t *testing.T) {
	s := Default()
	got := s.Accepted(3, 3)
	got[0] = "mutated"
	assert.Equal(t, "starch", s.Accepted(3, 3)[0])
}

func TestAccepted_FreeCell(t *testing.T) {
	s := Default()
	delete(s.Answers, "3-5")
	assert.Nil(t, s.Accepted(3, 5))

	s.Answers["2-2"] = []string{}
	assert.Nil(t, s.Accepted(2, 2))
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
		"name": "tiny",
		"topics": ["a", "b", "c", "d", "e", "f"],
		"questions": ["q1", "q2", "q3", "q4", "q5", "q6"],
		"answers": {"3-5": [], "0-0": ["yes"]}
	}`)
	s, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "tiny", s.Name)
	assert.Nil(t, s.Accepted(3, 5))
	assert.Equal(t, []string{"yes"}, s.Accepted(0, 0))
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"short topics":     "topics: [a]\nquestions: [q1,q2,q3,q4,q5,q6]\n",
		"short questions":  "topics: [a,b,c,d,e,f]\nquestions: [q1]\n",
		"blank topic":      "topics: [a,b,' ',d,e,f]\nquestions: [q1,q2,q3,q4,q5,q6]\n",
		"bad key":          "topics: [a,b,c,d,e,f]\nquestions: [q1,q2,q3,q4,q5,q6]\nanswers: {'x': [a]}\n",
		"key out of range": "topics: [a,b,c,d,e,f]\nquestions: [q1,q2,q3,q4,q5,q6]\nanswers: {'6-0': [a]}\n",
		"blank answer":     "topics: [a,b,c,d,e,f]\nquestions: [q1,q2,q3,q4,q5,q6]\nanswers: {'0-0': ['']}\n",
		"not yaml":         "topics: [a, b\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidSet)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKeyRoundTrip(t *testing.T) {
	c, r, err := ParseKey(Key(4, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, c)
	assert.Equal(t, 2, r)
}
