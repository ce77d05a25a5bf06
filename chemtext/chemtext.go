// Package chemtext turns plain chemistry strings into display and speech
// friendly text: "mno42-" becomes "MnO₄²⁻", "1ry standard" is read aloud as
// "primary standard".
package chemtext

import (
	"regexp"
	"unicode"
)

// twoLetterElements keep their second letter lower case when formatted.
var twoLetterElements = []string{"mn", "fe", "ce", "br", "cr", "cl", "mg", "al", "na"}

var (
	superscripts = map[rune]rune{
		'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
		'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
		'+': '⁺', '-': '⁻',
	}
	subscripts = map[rune]rune{
		'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
		'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	}
)

// Format upper-cases element symbols, turns charges into superscripts and
// the remaining digits into subscripts.
func Format(text string) string {
	lower := []rune(text)
	upper := make([]rune, len(lower))
	for i, r := range lower {
		lower[i] = unicode.ToLower(r)
		upper[i] = unicode.ToUpper(r)
	}

	// Mark the second letter of every two-letter element so it stays lower.
	keep := make([]bool, len(upper))
	for i := 0; i+1 < len(lower); i++ {
		if keep[i] {
			continue
		}
		for _, el := range twoLetterElements {
			e := []rune(el)
			if lower[i] == e[0] && lower[i+1] == e[1] {
				keep[i+1] = true
				break
			}
		}
	}
	for i := range upper {
		if keep[i] {
			upper[i] = lower[i]
		}
	}

	for i, r := range upper {
		if r == '+' || r == '-' {
			upper[i] = superscripts[r]
		}
	}

	out := make([]rune, len(upper))
	for i, r := range upper {
		if !unicode.IsDigit(r) {
			out[i] = r
			continue
		}
		if s, ok := superscripts[r]; ok && (isCharge(at(upper, i+1)) || isCharge(at(upper, i-1))) {
			out[i] = s
			continue
		}
		if s, ok := subscripts[r]; ok {
			out[i] = s
			continue
		}
		out[i] = r
	}
	return string(out)
}

func at(rs []rune, i int) rune {
	if i < 0 || i >= len(rs) {
		return 0
	}
	return rs[i]
}

func isCharge(r rune) bool { return r == '⁺' || r == '⁻' }

var spokenReplacements = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`(?i)1ry`), "primary"},
	{regexp.MustCompile(`(?i)2ry`), "secondary"},
	{regexp.MustCompile(`(?i)3ry`), "tertiary"},
	{regexp.MustCompile(`\+`), " plus "},
	{regexp.MustCompile(`-`), " minus "},
}

// Spoken rewrites text for a speech synthesizer: ordinal abbreviations are
// expanded and charge signs spelled out.
func Spoken(text string) string {
	for _, r := range spokenReplacements {
		text = r.re.ReplaceAllString(text, r.with)
	}
	return text
}
