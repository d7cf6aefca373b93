package post

import (
	"slices"
	"time"
)

// Fields is the plain representation of a Post used for construction and serialization.
type Fields struct {
	Title                 string
	Link                  string
	Date                  string
	Description           string
	Tags                  []Tag
	Image                 string
	Sticky                int
	Featured              bool
	Pinned                bool
	Collection            string
	CollectionOrder       *int
	CollectionDescription string
	Source                string
}

// Post is the canonical content record (immutable value object).
type Post struct {
	title                 string
	link                  string
	date                  string
	description           string
	tags                  []Tag
	image                 string
	sticky                int
	featured              bool
	pinned                bool
	collection            string
	collectionOrder       int
	hasCollectionOrder    bool
	collectionDescription string
	source                string
}

// New creates a Post from already-normalized fields. Slices are copied.
func New(f Fields) Post {
	p := Post{
		title:                 f.Title,
		link:                  f.Link,
		date:                  f.Date,
		description:           f.Description,
		tags:                  slices.Clone(f.Tags),
		image:                 f.Image,
		sticky:                f.Sticky,
		featured:              f.Featured,
		pinned:                f.Pinned,
		collection:            f.Collection,
		collectionDescription: f.CollectionDescription,
		source:                f.Source,
	}
	if p.tags == nil {
		p.tags = []Tag{}
	}
	if f.CollectionOrder != nil {
		p.collectionOrder = *f.CollectionOrder
		p.hasCollectionOrder = true
	}
	return p
}

// Title returns the post title ("" when absent).
func (p Post) Title() string { return p.title }

// Link returns the permalink, unique within a batch.
func (p Post) Link() string { return p.link }

// Date returns the canonical YYYY-MM-DD date or NoDate.
func (p Post) Date() string { return p.date }

// Description returns the post summary.
func (p Post) Description() string { return p.description }

// Tags returns a copy of the post tags.
func (p Post) Tags() []Tag { return slices.Clone(p.tags) }

// Image returns the cover image URL ("" when absent).
func (p Post) Image() string { return p.image }

// Sticky returns the editorial sticky weight.
func (p Post) Sticky() int { return p.sticky }

// Featured reports the editorial featured flag.
func (p Post) Featured() bool { return p.featured }

// Pinned reports the editorial pinned flag.
func (p Post) Pinned() bool { return p.pinned }

// Collection returns the series name ("" when the post is standalone).
func (p Post) Collection() string { return p.collection }

// CollectionOrder returns the explicit position within the series, if set.
func (p Post) CollectionOrder() (int, bool) { return p.collectionOrder, p.hasCollectionOrder }

// CollectionDescription returns the series-level description carried by this post.
func (p Post) CollectionDescription() string { return p.collectionDescription }

// Source returns the raw body text used for deep full-text matching.
func (p Post) Source() string { return p.source }

// HasTag reports whether the post carries a tag with the given label.
func (p Post) HasTag(label string) bool {
	for _, t := range p.tags {
		if t.Label() == label {
			return true
		}
	}
	return false
}

// TagLabels returns tag labels in declaration order.
func (p Post) TagLabels() []string {
	labels := make([]string, len(p.tags))
	for i, t := range p.tags {
		labels[i] = t.Label()
	}
	return labels
}

// Time parses the post date. ok is false for NoDate or an unparseable value.
func (p Post) Time() (time.Time, bool) {
	t, err := ParseDate(p.date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Fields returns the plain representation of the post.
func (p Post) Fields() Fields {
	f := Fields{
		Title:                 p.title,
		Link:                  p.link,
		Date:                  p.date,
		Description:           p.description,
		Tags:                  slices.Clone(p.tags),
		Image:                 p.image,
		Sticky:                p.sticky,
		Featured:              p.featured,
		Pinned:                p.pinned,
		Collection:            p.collection,
		CollectionDescription: p.collectionDescription,
		Source:                p.source,
	}
	if p.hasCollectionOrder {
		order := p.collectionOrder
		f.CollectionOrder = &order
	}
	return f
}
