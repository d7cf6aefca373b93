// Package batch holds one immutable generation of normalized content and its derived data.
package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/collection"
	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Batch is a snapshot of the content set (immutable value object).
// A new Batch is produced whenever the source posts change.
type Batch struct {
	posts       []post.Post
	tags        []post.Tag
	collections []collection.Collection
	byLink      map[string]int
	fingerprint string
	loadedAt    time.Time
}

// New creates a Batch from posts and their derived tags and collections.
func New(posts []post.Post, tags []post.Tag, collections []collection.Collection, loadedAt time.Time) Batch {
	byLink := make(map[string]int, len(posts))
	for i, p := range posts {
		if _, dup := byLink[p.Link()]; !dup {
			byLink[p.Link()] = i
		}
	}
	return Batch{
		posts:       slices.Clone(posts),
		tags:        slices.Clone(tags),
		collections: slices.Clone(collections),
		byLink:      byLink,
		fingerprint: Fingerprint(posts),
		loadedAt:    loadedAt,
	}
}

// Posts returns a copy of the posts in batch order.
func (b Batch) Posts() []post.Post { return slices.Clone(b.posts) }

// Tags returns a copy of the batch tags.
func (b Batch) Tags() []post.Tag { return slices.Clone(b.tags) }

// Collections returns a copy of the batch collections.
func (b Batch) Collections() []collection.Collection { return slices.Clone(b.collections) }

// Len returns the number of posts.
func (b Batch) Len() int { return len(b.posts) }

// Post looks a post up by link.
func (b Batch) Post(link string) (post.Post, bool) {
	i, ok := b.byLink[link]
	if !ok {
		return post.Post{}, false
	}
	return b.posts[i], true
}

// Collection looks a collection up by name.
func (b Batch) Collection(name string) (collection.Collection, bool) {
	for _, c := range b.collections {
		if c.Name() == name {
			return c, true
		}
	}
	return collection.Collection{}, false
}

// Fingerprint identifies the indexed content of the batch.
func (b Batch) Fingerprint() string { return b.fingerprint }

// LoadedAt returns when the batch was produced.
func (b Batch) LoadedAt() time.Time { return b.loadedAt }

// Fingerprint hashes the fields that affect search and ranking.
// Equal fingerprints mean a derived index can be reused.
func Fingerprint(posts []post.Post) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(strconv.Itoa(len(s))))
		h.Write([]byte{':'})
		h.Write([]byte(s))
	}
	for _, p := range posts {
		write(p.Link())
		write(p.Title())
		write(p.Description())
		write(p.Source())
		for _, l := range p.TagLabels() {
			write(l)
		}
		write("|")
	}
	return hex.EncodeToString(h.Sum(nil))
}
