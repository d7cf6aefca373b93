// Package extract derives batch-level tags and collections from posts.
package extract

import (
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/collection"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
	"github.com/wwwqqqzzz/blog-sub000/internal/usecase/series"
)

// defaultDescriptionSuffix completes the generated collection description.
const defaultDescriptionSuffix = " series"

// Tags returns the distinct tags of the batch in first-seen order.
// The first occurrence's permalink is kept; Count is the number of posts carrying the label.
func Tags(posts []post.Post) []post.Tag {
	index := make(map[string]int)
	var tags []post.Tag
	for _, p := range posts {
		seen := make(map[string]struct{})
		for _, t := range p.Tags() {
			if _, dup := seen[t.Label()]; dup {
				continue
			}
			seen[t.Label()] = struct{}{}

			if i, ok := index[t.Label()]; ok {
				tags[i] = tags[i].WithCount(tags[i].Count() + 1)
				continue
			}
			index[t.Label()] = len(tags)
			tags = append(tags, post.NewTag(t.Label(), t.Permalink(), 1))
		}
	}
	if tags == nil {
		return []post.Tag{}
	}
	return tags
}

// Collections groups posts by non-empty collection name, in first-seen order.
// Members are ordered with series.Order. Description and image come from the
// lowest-order member, then the first member carrying one; the description
// falls back to "<name> series".
func Collections(posts []post.Post) []collection.Collection {
	var names []string
	groups := make(map[string][]post.Post)
	for _, p := range posts {
		name := p.Collection()
		if name == "" {
			continue
		}
		if _, ok := groups[name]; !ok {
			names = append(names, name)
		}
		groups[name] = append(groups[name], p)
	}

	out := make([]collection.Collection, 0, len(names))
	for _, name := range names {
		members := series.Order(groups[name])

		description := firstNonEmpty(members, post.Post.CollectionDescription)
		if description == "" {
			description = name + defaultDescriptionSuffix
		}
		image := firstNonEmpty(members, post.Post.Image)

		// members is never empty here, so New cannot fail
		c, err := collection.New(name, description, members, image)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Find returns the collection with the given name.
func Find(collections []collection.Collection, name string) (collection.Collection, bool) {
	for _, c := range collections {
		if c.Name() == name {
			return c, true
		}
	}
	return collection.Collection{}, false
}

func firstNonEmpty(ordered []post.Post, field func(post.Post) string) string {
	for _, p := range ordered {
		if v := field(p); v != "" {
			return v
		}
	}
	return ""
}
