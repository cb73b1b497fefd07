// Package lexicon compiles the profanity word list into a single matcher
// shared read-only by all concurrent message evaluations.
package lexicon

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var ErrEmptyWordList = errors.New("word list contains no usable words")

// Lexicon is an immutable compiled word-boundary matcher. Build it once at
// startup with New; Contains is safe for concurrent use.
type Lexicon struct {
	pattern *regexp.Regexp
	size    int
}

// New compiles a lexicon from the raw word list. Words are lower-cased and a
// simple plural (+s) form is added for every word that does not already end
// in "s". The resulting set is deduplicated, sorted, and joined into one
// alternation anchored to word boundaries: start-of-line or space on the
// left, space, period, or end-of-line on the right. Matching is
// case-insensitive and multi-line.
func New(words []string) (*Lexicon, error) {
	expanded := Normalize(words)
	if len(expanded) == 0 {
		return nil, ErrEmptyWordList
	}

	escaped := make([]string, len(expanded))
	for i, word := range expanded {
		escaped[i] = regexp.QuoteMeta(word)
	}

	pattern, err := regexp.Compile(`(?im)(^| )(` + strings.Join(escaped, "|") + `)( |\.|$)`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile word list pattern: %w", err)
	}

	return &Lexicon{pattern: pattern, size: len(expanded)}, nil
}

// Contains reports whether the text contains any lexicon word as a
// standalone token.
func (l *Lexicon) Contains(text string) bool {
	return l.pattern.MatchString(text)
}

// Size returns the number of compiled word forms, including added plurals.
func (l *Lexicon) Size() int {
	return l.size
}

// Normalize lower-cases and trims the raw words, adds the simple plural form
// for each word not already ending in "s", and returns the deduplicated,
// sorted result. The wordlist tool uses the same normalization so the stored
// list and the compiled matcher never drift apart.
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words)*2)

	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}

		seen[word] = struct{}{}
		if !strings.HasSuffix(word, "s") {
			seen[word+"s"] = struct{}{}
		}
	}

	expanded := make([]string, 0, len(seen))
	for word := range seen {
		expanded = append(expanded, word)
	}

	sort.Strings(expanded)

	return expanded
}
