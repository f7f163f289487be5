package catalog

import (
	"fmt"
	"sort"
	"strings"

	"shopng/internal/models"
)

// Catalog holds the immutable product collection and serves read-only
// views over it. All accessors return fresh slices so callers can never
// disturb the backing collection.
type Catalog struct {
	products []models.Product
}

// New creates a catalog over the given product collection.
func New(products []models.Product) *Catalog {
	owned := make([]models.Product, len(products))
	copy(owned, products)
	return &Catalog{products: owned}
}

// NewSeeded creates a catalog over the built-in store collection.
func NewSeeded() *Catalog {
	return New(seedProducts())
}

// Products returns all products.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ProductByID returns the product with the given id.
func (c *Catalog) ProductByID(id int64) (*models.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, models.ErrNotFound)
}

// ProductsByCategory returns all products whose category matches,
// case-insensitively.
func (c *Catalog) ProductsByCategory(category string) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns products whose name or description contains the term,
// case-insensitively.
func (c *Catalog) Search(term string) []models.Product {
	lower := strings.ToLower(term)
	out := make([]models.Product, 0)
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category labels in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Featured returns the four highest-rated products.
func (c *Catalog) Featured() []models.Product {
	ranked := c.Products()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	if len(ranked) > 4 {
		ranked = ranked[:4]
	}
	return ranked
}
