package search

import "unicode/utf8"

const ellipsis = "…"

// SnippetWindow is the number of runes kept around a match.
type SnippetWindow struct {
	Before int
	After  int
}

// DefaultSnippetWindow keeps 30 runes before a match and 100 after it.
func DefaultSnippetWindow() SnippetWindow {
	return SnippetWindow{Before: 30, After: 100}
}

// snippet cuts a window around text[start:end]. An ellipsis marks each cut
// side, but only when the cut removes at least as many bytes as the ellipsis,
// so the snippet is never longer than text.
func snippet(text string, start, end int, w SnippetWindow) string {
	start = clamp(start, 0, len(text))
	end = clamp(end, start, len(text))

	from := start
	for k := 0; k < w.Before && from > 0; k++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}
	to := end
	for k := 0; k < w.After && to < len(text); k++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}

	prefix, suffix := "", ""
	if from > 0 {
		if from < len(ellipsis) {
			from = 0
		} else {
			prefix = ellipsis
		}
	}
	if cut := len(text) - to; cut > 0 {
		if cut < len(ellipsis) {
			to = len(text)
		} else {
			suffix = ellipsis
		}
	}
	return prefix + text[from:to] + suffix
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
