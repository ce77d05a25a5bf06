// Package matcher decides whether a free-text answer is close enough to one
// of the accepted answers for a cell.
package matcher

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Result describes the outcome of matching a submission against a cell's
// accepted answers.
type Result struct {
	Accepted bool
	// Matched is the accepted answer that matched, normalized. Empty for a
	// free cell or a rejection.
	Matched  string
	Distance int
	// Free is true when the cell had no accepted answers at all.
	Free bool
}

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return norm.NFC.String(cases.Lower(language.Und).String(strings.TrimSpace(s)))
}

// Budget returns how many edits are tolerated against answer.
func Budget(answer string) int {
	n := len([]rune(Normalize(answer)))
	switch {
	case n > 6:
		return 2
	case n > 3:
		return 1
	default:
		return 0
	}
}

// Distance returns the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	table := make([][]int, len(ra)+1)
	for i := range table {
		table[i] = make([]int, len(rb)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				table[i][j] = table[i-1][j-1]
				continue
			}
			table[i][j] = 1 + min(table[i-1][j-1], table[i][j-1], table[i-1][j])
		}
	}
	return table[len(ra)][len(rb)]
}

// Match checks submitted against accepted in order and stops at the first
// answer that is identical after normalization or within its edit budget.
// An empty accepted list is a free cell and accepts anything.
func Match(submitted string, accepted []string) Result {
	if len(accepted) == 0 {
		return Result{Accepted: true, Free: true}
	}

	input := Normalize(submitted)
	for _, answer := range accepted {
		want := Normalize(answer)
		if input == want {
			return Result{Accepted: true, Matched: want}
		}
		d := Distance(input, want)
		if d > 0 && d <= Budget(want) {
			return Result{Accepted: true, Matched: want, Distance: d}
		}
	}
	return Result{}
}

// IsAcceptable reports whether submitted matches any of accepted.
func IsAcceptable(submitted string, accepted []string) bool {
	return Match(submitted, accepted).Accepted
}
