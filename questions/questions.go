// Package questions holds the category axes and the answer key that gate
// every cell of the board.
//
// A Set names one topic per column and one question per row. The answer key
// maps a "col-row" key to the answers accepted for that cell, in the order a
// matcher should try them. A cell with no answers is free: any non-blank
// submission is accepted there.
package questions

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Size is the number of topics and the number of questions in a set.
const Size = 6

// ErrInvalidSet is wrapped by every validation failure.
var ErrInvalidSet = errors.New("invalid question set")

//go:embed default.yaml
var defaultYAML []byte

var defaultSet = mustParse(defaultYAML)

// Set is a complete board of questions.
type Set struct {
	Name      string              `yaml:"name" json:"name"`
	Topics    []string            `yaml:"topics" json:"topics"`
	Questions []string            `yaml:"questions" json:"questions"`
	Answers   map[string][]string `yaml:"answers" json:"answers"`
}

// Default returns a copy of the built-in redox titrant set.
func Default() *Set {
	return defaultSet.Clone()
}

// Parse decodes and validates a set. JSON input is accepted as well, since
// it is read as YAML.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSet, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a set from a YAML or JSON file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func mustParse(data []byte) *Set {
	s, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded question set: %v", err))
	}
	return s
}

// Validate checks the axes lengths and every answer key.
func (s *Set) Validate() error {
	if len(s.Topics) != Size {
		return fmt.Errorf("%w: want %d topics, got %d", ErrInvalidSet, Size, len(s.Topics))
	}
	if len(s.Questions) != Size {
		return fmt.Errorf("%w: want %d questions, got %d", ErrInvalidSet, Size, len(s.Questions))
	}
	for i, t := range s.Topics {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: topic %d is blank", ErrInvalidSet, i)
		}
	}
	for i, q := range s.Questions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("%w: question %d is blank", ErrInvalidSet, i)
		}
	}
	for key, answers := range s.Answers {
		if _, _, err := ParseKey(key); err != nil {
			return err
		}
		for _, a := range answers {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("%w: blank answer for cell %s", ErrInvalidSet, key)
			}
		}
	}
	return nil
}

// Topic returns the column's topic.
func (s *Set) Topic(column int) string { return s.Topics[column] }

// Question returns the row's question.
func (s *Set) Question(row int) string { return s.Questions[row] }

// Accepted returns a copy of the answers accepted at (column, row). A nil
// result marks a free cell.
func (s *Set) Accepted(column, row int) []string {
	answers := s.Answers[Key(column, row)]
	if len(answers) == 0 {
		return nil
	}
	return append([]string(nil), answers...)
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	c := &Set{
		Name:      s.Name,
		Topics:    append([]string(nil), s.Topics...),
		Questions: append([]string(nil), s.Questions...),
		Answers:   make(map[string][]string, len(s.Answers)),
	}
	for k, v := range s.Answers {
		c.Answers[k] = append([]string(nil), v...)
	}
	return c
}

// Key formats a cell coordinate the way answer keys are written.
func Key(column, row int) string {
	return strconv.Itoa(column) + "-" + strconv.Itoa(row)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (column, row int, err error) {
	c, r, ok := strings.Cut(key, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: malformed cell key %q", ErrInvalidSet, key)
	}
	column, cerr := strconv.Atoi(c)
	row, rerr := strconv.Atoi(r)
	if cerr != nil || rerr != nil {
		return 0, 0, fmt.Errorf("%w: malformed cell key %q", ErrInvalidSet, key)
	}
	if column < 0 || column >= Size || row < 0 || row >= Size {
		return 0, 0, fmt.Errorf("%w: cell key %q out of range", ErrInvalidSet, key)
	}
	return column, row, nil
}
