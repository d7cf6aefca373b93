package collection

import (
	"fmt"
	"slices"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

// Collection is a named, ordered series of posts (immutable value object).
// Collections are derived from a batch and never mutated in place.
type Collection struct {
	id          string
	name        string
	description string
	posts       []post.Post
	image       string
}

// New creates a Collection. posts must already be in series order and non-empty.
func New(name, description string, posts []post.Post, image string) (Collection, error) {
	if name == "" {
		return Collection{}, fmt.Errorf("collection name is required")
	}
	if len(posts) == 0 {
		return Collection{}, fmt.Errorf("collection %q has no posts", name)
	}
	return Collection{
		id:          name,
		name:        name,
		description: description,
		posts:       slices.Clone(posts),
		image:       image,
	}, nil
}

// ID returns the collection identifier (same as Name).
func (c Collection) ID() string { return c.id }

// Name returns the series name.
func (c Collection) Name() string { return c.name }

// Description returns the series description.
func (c Collection) Description() string { return c.description }

// Posts returns a copy of the ordered member posts.
func (c Collection) Posts() []post.Post { return slices.Clone(c.posts) }

// Len returns the number of member posts.
func (c Collection) Len() int { return len(c.posts) }

// Image returns the series cover image ("" when absent).
func (c Collection) Image() string { return c.image }
