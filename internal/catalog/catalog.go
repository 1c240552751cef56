// Package catalog holds the fixed, ordered list of tweet categories.
// A Catalog is built once at startup and is read-only afterwards; every
// accessor hands out copies so callers can never mutate shared state.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors for catalog operations.
var (
	ErrNotFound       = errors.New("category not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Category is a named bucket of candidate tweets.
type Category struct {
	ID          string   `yaml:"id" json:"id"`
	DisplayName string   `yaml:"name" json:"name"`
	Candidates  []string `yaml:"tweets,omitempty" json:"-"`
}

func (c Category) clone() Category {
	c.Candidates = slices.Clone(c.Candidates)
	return c
}

// Catalog is an immutable, ordered set of categories keyed by ID.
type Catalog struct {
	categories []Category
	index      map[string]int
}

// New validates the categories and builds a Catalog.
// IDs must be non-empty and unique. Empty candidate lists are accepted:
// a remote-mode catalog carries names only, and local resolution fails
// deterministically on such categories.
func New(categories ...Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for i, cat := range categories {
		id := strings.TrimSpace(cat.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: category %d has an empty id", ErrInvalidCatalog, i)
		}
		if id != cat.ID {
			return nil, fmt.Errorf("%w: category id %q has surrounding whitespace", ErrInvalidCatalog, cat.ID)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalidCatalog, id)
		}
		if cat.DisplayName == "" {
			cat.DisplayName = id
		}
		c.index[id] = len(c.categories)
		c.categories = append(c.categories, cat.clone())
	}
	return c, nil
}

// MustNew is New for package-level literals; it panics on invalid input.
func MustNew(categories ...Category) *Catalog {
	c, err := New(categories...)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns every category in catalog order.
func (c *Catalog) List() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.clone()
	}
	return out
}

// Find returns the category with the given id, or ErrNotFound.
func (c *Catalog) Find(id string) (Category, error) {
	i, ok := c.index[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.categories[i].clone(), nil
}

// Has reports whether id names a category.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns the category ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.categories))
	for i, cat := range c.categories {
		ids[i] = cat.ID
	}
	return ids
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.categories) }
