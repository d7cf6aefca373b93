package related

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minWordLength is exclusive: only words longer than this count.
const minWordLength = 2

// significantWords lower-cases text, strips punctuation and symbols, and keeps
// words longer than minWordLength runes, in order (duplicates kept).
func significantWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, f)
		if utf8.RuneCountInString(w) > minWordLength {
			words = append(words, w)
		}
	}
	return words
}

func keywordSet(texts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range texts {
		for _, w := range significantWords(t) {
			set[w] = struct{}{}
		}
	}
	return set
}
