package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameroncuttingedge/titration_four/config"
	"github.com/cameroncuttingedge/titration_four/game"
	"github.com/cameroncuttingedge/titration_four/questions"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestRunPlay_ScriptedTurns(t *testing.T) {
	session := game.NewSession(game.Options{ID: "cli"})
	var out bytes.Buffer
	err := runPlay(script(
		"Alice", "Bob", "n",
		"1", "no", // Alice claims the floor of column 1
		"1", "mn2+", // Bob answers on top of it
		"7", "x", // bad column input
		"2", "c", // Alice backs out
		"2", "", "nope", // blank is re-asked, then wrong
		"q",
	), &out, session)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Player 1 name (Acid): ")
	assert.Contains(t, text, "Alice (Acid), choose a column 1-6: ")
	assert.Contains(t, text, "Topic: KMnO₄\n\nIs this titrant considered a 1ry standard?")
	assert.Contains(t, text, "Correct!\n")
	assert.Contains(t, text, "Correct! Neutralization!")
	assert.Contains(t, text, "Column must be between 1 and 6.")
	assert.Contains(t, text, "Enter a column number, or q to quit.")
	assert.Contains(t, text, "Question cancelled.")
	assert.Contains(t, text, "Please type an answer.")
	assert.Contains(t, text, "Incorrect. Your turn is over.")
	assert.Contains(t, text, "Review:")
	assert.Contains(t, text, `3. Alice - K₂Cr₂O₇: Is this titrant considered a 1ry standard -> "nope" wrong, expected: yes`)

	assert.Len(t, session.History(), 3)
	assert.Equal(t, "Bob", session.CurrentPlayer().Name)
}

func TestRunPlay_VerticalWin(t *testing.T) {
	set := questions.Default()
	for key := range set.Answers {
		set.Answers[key] = []string{"right"}
	}
	session := game.NewSession(game.Options{Questions: set})

	lines := []string{"", "", "y"}
	for i := 0; i < 3; i++ {
		lines = append(lines, "4", "right", "5", "right")
	}
	lines = append(lines, "4", "right")

	var out bytes.Buffer
	require.NoError(t, runPlay(script(lines...), &out, session))

	text := out.String()
	assert.Contains(t, text, "Player 1 (Base) wins!")
	assert.Contains(t, text, "pH 14.0 (basic)")
	assert.Equal(t, game.StateWon, session.State())
}

func TestRunPlay_EOFDuringSetup(t *testing.T) {
	session := game.NewSession(game.Options{})
	var out bytes.Buffer
	require.NoError(t, runPlay(strings.NewReader("Alice\n"), &out, session))
	assert.Equal(t, game.StateSetup, session.State())
	assert.NotContains(t, out.String(), "Review:")
}

func TestLoadQuestions(t *testing.T) {
	set, err := loadQuestions(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "Redox titrants", set.Name)

	_, err = loadQuestions(config.Config{QuestionSet: "does-not-exist.yaml"})
	assert.Error(t, err)
}
