// Package series orders the posts of a collection and derives prev/next navigation.
package series

import (
	"math"
	"slices"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// unordered is the sort key of posts without an explicit collection order.
const unordered = math.MaxInt

// Navigation is the position of one post inside an ordered collection.
type Navigation struct {
	Prev     *post.Post
	Next     *post.Post
	Index    int
	Total    int
	Progress int
}

// Order returns a new slice sorted by collection order ascending (posts without
// an order last), ties broken by date descending (unparseable dates last).
// The sort is stable, so Order(Order(x)) == Order(x). The input is not modified.
func Order(posts []post.Post) []post.Post {
	type keyed struct {
		p     post.Post
		order int
		date  time.Time
	}
	ks := make([]keyed, len(posts))
	for i, p := range posts {
		order, ok := p.CollectionOrder()
		if !ok {
			order = unordered
		}
		date, _ := p.Time() // zero time sorts last under descending date
		ks[i] = keyed{p: p, order: order, date: date}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		if a.order != b.order {
			if a.order < b.order {
				return -1
			}
			return 1
		}
		return b.date.Compare(a.date)
	})

	out := make([]post.Post, len(ks))
	for i, k := range ks {
		out[i] = k.p
	}
	return out
}

// Navigate locates link inside already-ordered posts.
// ok is false when the link is absent or the collection has at most one post.
func Navigate(posts []post.Post, link string) (Navigation, bool) {
	total := len(posts)
	if total <= 1 {
		return Navigation{}, false
	}
	idx := slices.IndexFunc(posts, func(p post.Post) bool { return p.Link() == link })
	if idx < 0 {
		return Navigation{}, false
	}

	nav := Navigation{
		Index:    idx,
		Total:    total,
		Progress: int(math.Round(100 * float64(idx+1) / float64(total))),
	}
	if idx > 0 {
		prev := posts[idx-1]
		nav.Prev = &prev
	}
	if idx < total-1 {
		next := posts[idx+1]
		nav.Next = &next
	}
	return nav, true
}
