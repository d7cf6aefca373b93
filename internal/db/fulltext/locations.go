package fulltext

import "github.com/blevesearch/bleve/v2/search"

// firstMatches reduces bleve term locations to the earliest match per field.
func firstMatches(locs search.FieldTermLocationMap) map[string]Match {
	out := make(map[string]Match, len(locs))
	for field, terms := range locs {
		var best Match
		found := false
		for _, locations := range terms {
			for _, l := range locations {
				if l == nil {
					continue
				}
				m := Match{Start: int(l.Start), End: int(l.End)}
				if len(l.ArrayPositions) > 0 {
					m.Element = int(l.ArrayPositions[0])
				}
				if !found || before(m, best) {
					best = m
					found = true
				}
			}
		}
		if found {
			out[field] = best
		}
	}
	return out
}

func before(a, b Match) bool {
	if a.Element != b.Element {
		return a.Element < b.Element
	}
	return a.Start < b.Start
}
