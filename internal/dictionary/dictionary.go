// Package dictionary provides the English word list used to settle
// ambiguous Pig Latin decodings.
//
// A word list is plain text with one word per line. A word matches only a
// line that is identical to it, case included.
package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed english.txt
var englishRaw string

// ErrEmpty is returned when a word list contains no words.
var ErrEmpty = errors.New("dictionary: no words")

// Set is an immutable set of words. It is safe for concurrent use.
type Set struct {
	words map[string]struct{}
}

// New returns a Set holding words. Empty strings are ignored.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w != "" {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// Read parses a word list from r. Blank lines are skipped and a trailing
// carriage return is dropped from each line; nothing else is trimmed.
func Read(r io.Reader) (*Set, error) {
	s := &Set{words: make(map[string]struct{})}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		s.words[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if len(s.words) == 0 {
		return nil, ErrEmpty
	}
	return s, nil
}

// Load reads the word list stored at path.
func Load(path string) (*Set, error) {
	if path == "" {
		return nil, errors.New("dictionary path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return s, nil
}

var loadDefault = sync.OnceValue(func() *Set {
	s, err := Read(strings.NewReader(englishRaw))
	if err != nil {
		panic(fmt.Sprintf("embedded word list: %v", err))
	}
	return s
})

// Default returns the built-in English word list.
func Default() *Set {
	return loadDefault()
}

// Open loads the word list at path, or returns Default when path is empty.
func Open(path string) (*Set, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Contains reports whether word is in the set.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct words.
func (s *Set) Len() int {
	return len(s.words)
}
