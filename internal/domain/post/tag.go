package post

// TagPathPrefix is prepended to the label slug to build a tag permalink.
const TagPathPrefix = "/tags/"

// Tag is a label attached to posts. Uniqueness key is the label (case-sensitive).
type Tag struct {
	label     string
	permalink string
	count     int
}

// NewTag creates a tag.
func NewTag(label, permalink string, count int) Tag {
	return Tag{label: label, permalink: permalink, count: count}
}

// Label returns the tag label as given by the author.
func (t Tag) Label() string { return t.label }

// Permalink returns the tag page path.
func (t Tag) Permalink() string { return t.permalink }

// Count returns the number of posts carrying the tag within the current batch.
func (t Tag) Count() int { return t.count }

// WithCount returns a copy of the tag with a different count.
func (t Tag) WithCount(n int) Tag {
	t.count = n
	return t
}
