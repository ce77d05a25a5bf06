package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cameroncuttingedge/titration_four/chemtext"
	"github.com/cameroncuttingedge/titration_four/game"
	"github.com/cameroncuttingedge/titration_four/utils"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a two-player game in the terminal",
	Long: `Play a local game on one keyboard. Pick a column with 1-6, then answer
the question for the cell your piece would land on. Type c to back out of a
question, q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel == "info" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
		set, err := loadQuestions(cfg)
		if err != nil {
			return err
		}
		session := game.NewSession(game.Options{Questions: set, Weights: cfg.Eval.Weights()})
		return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), session)
	},
}

type terminal struct {
	in      *bufio.Scanner
	out     io.Writer
	session *game.Session
}

// errQuit ends the game loop early.
var errQuit = errors.New("quit")

func runPlay(in io.Reader, out io.Writer, session *game.Session) error {
	t := &terminal{in: bufio.NewScanner(in), out: out, session: session}
	if err := t.setup(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	if session.State() == game.StateSetup {
		return nil
	}

	err := t.loop()
	t.review()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (t *terminal) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		fmt.Fprintln(t.out)
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *terminal) setup() error {
	players := t.session.Players()
	for seat := range players {
		name, err := t.readLine(fmt.Sprintf("Player %d name (%s): ", seat+1, players[seat].Role()))
		if err != nil {
			return err
		}
		if err := t.session.SetPlayerName(game.PlayerID(seat), name); err != nil {
			return err
		}
	}
	swap, err := t.readLine("Swap acid and base? [y/N]: ")
	if err != nil {
		return err
	}
	if strings.EqualFold(swap, "y") || strings.EqualFold(swap, "yes") {
		if err := t.session.SwapRoles(); err != nil {
			return err
		}
	}
	return t.session.Start()
}

func (t *terminal) loop() error {
	for {
		t.render()
		switch t.session.State() {
		case game.StateWon:
			winner, _ := t.session.Winner()
			fmt.Fprintf(t.out, "%s (%s) wins!\n", winner.Name, winner.Role())
			return nil
		case game.StateDrawn:
			fmt.Fprintln(t.out, "The board is full. It's a draw.")
			return nil
		}
		if err := t.turn(); err != nil {
			return err
		}
	}
}

func (t *terminal) turn() error {
	player := t.session.CurrentPlayer()
	var prompt game.Prompt
	for {
		input, err := t.readLine(fmt.Sprintf("%s (%s), choose a column 1-%d: ", player.Name, player.Role(), game.Columns))
		if err != nil {
			return err
		}
		if strings.EqualFold(input, "q") {
			return errQuit
		}
		column, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(t.out, "Enter a column number, or q to quit.\n")
			continue
		}
		prompt, err = t.session.ChooseColumn(column - 1)
		switch {
		case errors.Is(err, game.ErrColumnOutOfRange):
			fmt.Fprintf(t.out, "Column must be between 1 and %d.\n", game.Columns)
			continue
		case errors.Is(err, game.ErrColumnFull):
			fmt.Fprintln(t.out, "That column is full, pick another.")
			continue
		case err != nil:
			return err
		}
		break
	}

	fmt.Fprintf(t.out, "\nTopic: %s\n\n%s\n", prompt.TopicLabel, prompt.Question)
	for {
		answer, err := t.readLine("Answer (c to cancel): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "c") {
			t.session.CancelQuestion()
			fmt.Fprintln(t.out, "Question cancelled.")
			return nil
		}
		out, err := t.session.SubmitAnswer(answer)
		if errors.Is(err, game.ErrBlankAnswer) {
			fmt.Fprintln(t.out, "Please type an answer.")
			continue
		}
		if err != nil {
			return err
		}
		t.report(out)
		return nil
	}
}

func (t *terminal) report(out game.Outcome) {
	if !out.Accepted {
		fmt.Fprintln(t.out, "Incorrect. Your turn is over.")
		return
	}
	if out.Reaction == game.Neutralization {
		fmt.Fprintln(t.out, "Correct! Neutralization!")
		return
	}
	fmt.Fprintln(t.out, "Correct!")
}

func (t *terminal) render() {
	grid := utils.ConvertBoardToStrings(t.session.Board().Grid(), t.session.Players())
	var b strings.Builder
	b.WriteString("\n")
	for c := 1; c <= game.Columns; c++ {
		fmt.Fprintf(&b, " %d", c)
	}
	b.WriteString("\n")
	for _, row := range grid {
		for _, cell := range row {
			b.WriteString(" " + cell)
		}
		b.WriteString("\n")
	}
	adv := t.session.Advantage()
	fmt.Fprintf(&b, "pH %.1f (%s)\n", adv, game.Indicate(adv))
	fmt.Fprint(t.out, b.String())
}

// review prints every question asked. Wrong answers show the first accepted
// answer, or "Free Space" for cells without one.
func (t *terminal) review() {
	history := t.session.History()
	if len(history) == 0 {
		return
	}
	fmt.Fprintln(t.out, "\nReview:")
	for _, h := range history {
		line := fmt.Sprintf("%d. %s - %s: %s -> %q", h.Seq, h.PlayerName, chemtext.Format(h.Topic), h.Question, h.Submitted)
		if h.Correct {
			fmt.Fprintln(t.out, line+" correct")
			continue
		}
		expected := "Free Space"
		if len(h.Accepted) > 0 {
			expected = h.Accepted[0]
		}
		fmt.Fprintf(t.out, "%s wrong, expected: %s\n", line, expected)
	}
}
