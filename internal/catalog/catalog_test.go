package catalog

import (
	"errors"
	"testing"

	"shopng/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductByID(t *testing.T) {
	c := NewSeeded()

	p, err := c.ProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Bluetooth Headphones", p.Name)

	_, err = c.ProductByID(9999)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestProductsByCategoryIsCaseInsensitive(t *testing.T) {
	c := NewSeeded()

	books := c.ProductsByCategory("books")
	require.Len(t, books, 3)
	for _, p := range books {
		assert.Equal(t, "Books", p.Category)
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	c := NewSeeded()

	byName := c.Search("BLUETOOTH")
	assert.Len(t, byName, 2)

	byDescription := c.Search("noise cancellation")
	require.Len(t, byDescription, 1)
	assert.Equal(t, int64(1), byDescription[0].ID)

	assert.Empty(t, c.Search("no such thing"))
}

func TestCategoriesAreUniqueInFirstSeenOrder(t *testing.T) {
	c := NewSeeded()

	assert.Equal(t, []string{"Electronics", "Clothing", "Books", "Home"}, c.Categories())
}

func TestFeaturedReturnsTopFourByRating(t *testing.T) {
	c := NewSeeded()

	featured := c.Featured()
	require.Len(t, featured, 4)
	assert.Equal(t, int64(8), featured[0].ID) // 4.9
	assert.Equal(t, int64(7), featured[1].ID) // 4.8
	assert.Equal(t, int64(4), featured[2].ID) // 4.7
	for i := 1; i < len(featured); i++ {
		assert.GreaterOrEqual(t, featured[i-1].Rating, featured[i].Rating)
	}

	// Ranking must not disturb the backing collection.
	assert.Equal(t, int64(1), c.Products()[0].ID)
}
