// Package highlight splits result text around query terms for presentational emphasis.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// MinTermLength is the shortest term (in runes) that gets highlighted.
const MinTermLength = 2

// Segment is a run of text; Match marks an occurrence of a query term.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Pattern compiles a case-insensitive alternation of the query terms.
// Returns nil when no term is long enough.
func Pattern(query string) *regexp.Regexp {
	seen := make(map[string]struct{})
	var terms []string
	for _, term := range strings.Fields(query) {
		if utf8.RuneCountInString(term) < MinTermLength {
			continue
		}
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, regexp.QuoteMeta(term))
	}
	if len(terms) == 0 {
		return nil
	}
	// longest first so "react" wins over "re"
	sort.SliceStable(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	return regexp.MustCompile("(?i)(" + strings.Join(terms, "|") + ")")
}

// Split returns text as alternating plain and matched segments.
// Concatenating the segment texts reproduces text exactly.
func Split(text, query string) []Segment {
	if text == "" {
		return []Segment{}
	}
	re := Pattern(query)
	if re == nil {
		return []Segment{{Text: text}}
	}

	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(locs)*2+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// Render joins segments, wrapping matches with the given mark function.
func Render(segments []Segment, mark func(string) string) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Match {
			b.WriteString(mark(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
