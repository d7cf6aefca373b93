// Package normalize converts loosely-typed raw entries into canonical posts.
package normalize

import (
	"strings"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Recognized field keys. Aliases are tried in order.
var (
	keysTitle                 = []string{"title"}
	keysLink                  = []string{"permalink", "link", "url"}
	keysSlug                  = []string{"slug"}
	keysDate                  = []string{"date", "published", "pubDate"}
	keysDescription           = []string{"description", "summary", "excerpt"}
	keysTags                  = []string{"tags"}
	keysImage                 = []string{"image", "cover"}
	keysSticky                = []string{"sticky"}
	keysFeatured              = []string{"featured"}
	keysPinned                = []string{"pinned"}
	keysCollection            = []string{"collection", "series"}
	keysCollectionOrder       = []string{"collectionOrder", "collection_order", "seriesOrder"}
	keysCollectionDescription = []string{"collectionDescription", "collection_description"}
	keysSource                = []string{"source", "content", "body"}
)

// Normalize converts raw entries into posts. It never fails: absent or
// wrong-typed fields resolve to empty defaults. Output order matches input.
func Normalize(entries []post.RawEntry) []post.Post {
	posts := make([]post.Post, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, Entry(e))
	}
	return posts
}

// Entry normalizes a single raw entry.
func Entry(e post.RawEntry) post.Post {
	v := view{meta: e, fm: e.FrontMatter()}

	f := post.Fields{
		Title:                 v.str(keysTitle),
		Link:                  v.link(),
		Date:                  v.date(),
		Description:           v.str(keysDescription),
		Tags:                  Tags(v.value(keysTags)),
		Image:                 v.str(keysImage),
		Sticky:                v.int(keysSticky),
		Featured:              v.bool(keysFeatured),
		Pinned:                v.bool(keysPinned),
		Collection:            v.str(keysCollection),
		CollectionDescription: v.str(keysCollectionDescription),
		Source:                v.str(keysSource),
	}
	if raw := v.value(keysCollectionOrder); raw != nil {
		if n, ok := asInt(raw); ok {
			f.CollectionOrder = &n
		}
	}
	return post.New(f)
}

// Tags unifies the accepted tag shapes into post tags with count 1.
// Accepted: a list of strings, a list of {label: ...} objects (mixed is fine),
// or a single comma-separated string. Blank and repeated labels are dropped.
func Tags(raw any) []post.Tag {
	var labels []string
	switch x := raw.(type) {
	case string:
		labels = strings.Split(x, ",")
	case []string:
		labels = x
	case []any:
		for _, item := range x {
			if label, ok := tagLabel(item); ok {
				labels = append(labels, label)
			}
		}
	}

	tags := make([]post.Tag, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		tags = append(tags, NewTag(l))
	}
	return tags
}

// NewTag builds a tag with a synthesized permalink and count 1.
func NewTag(label string) post.Tag {
	return post.NewTag(label, post.TagPathPrefix+Slug(strings.ToLower(label)), 1)
}

func tagLabel(item any) (string, bool) {
	switch x := item.(type) {
	case string:
		return x, true
	case map[string]any:
		return labelFromMap(func(k string) any { return x[k] })
	case map[any]any:
		return labelFromMap(func(k string) any { return x[k] })
	default:
		return asString(item)
	}
}

func labelFromMap(get func(string) any) (string, bool) {
	for _, k := range []string{"label", "name"} {
		if s, ok := get(k).(string); ok {
			return s, true
		}
	}
	return "", false
}

// view reads fields with front-matter values taking precedence over metadata.
type view struct {
	meta post.RawEntry
	fm   map[string]any
}

func (v view) value(keys []string) any {
	for _, src := range []map[string]any{v.fm, v.meta} {
		if src == nil {
			continue
		}
		for _, k := range keys {
			if val, ok := src[k]; ok && val != nil {
				return val
			}
		}
	}
	return nil
}

func (v view) str(keys []string) string {
	s, _ := asString(v.value(keys))
	return s
}

func (v view) int(keys []string) int {
	n, _ := asInt(v.value(keys))
	return n
}

func (v view) bool(keys []string) bool {
	b, _ := asBool(v.value(keys))
	return b
}

func (v view) date() string {
	return asDate(v.value(keysDate))
}

func (v view) link() string {
	if l := v.str(keysLink); l != "" {
		return l
	}
	if s := v.str(keysSlug); s != "" {
		return "/" + strings.TrimPrefix(s, "/")
	}
	return ""
}
