package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_MalformedInput(t *testing.T) {
	t.Run("invalid_json", func(t *testing.T) {
		products, err := Normalize([]byte("{not json"))
		assert.Error(t, err)
		assert.Nil(t, products)
	})

	t.Run("non_array_top_level", func(t *testing.T) {
		products, err := Normalize([]byte(`{"title":"not an array"}`))
		assert.Error(t, err)
		assert.Nil(t, products)
	})

	t.Run("empty_input", func(t *testing.T) {
		products, err := Normalize(nil)
		assert.Error(t, err)
		assert.Nil(t, products)
	})

	t.Run("empty_array", func(t *testing.T) {
		products, err := Normalize([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestNormalize_FieldCoercion(t *testing.T) {
	t.Run("defaults_for_empty_object", func(t *testing.T) {
		products, err := Normalize([]byte(`[{}]`))
		require.NoError(t, err)
		require.Len(t, products, 1)

		p := products[0]
		assert.Equal(t, 0, p.ID)
		assert.Equal(t, "", p.Title)
		assert.Equal(t, "", p.Slug)
		assert.Equal(t, "", p.Description)
		assert.Equal(t, float64(0), p.Price)
		assert.Equal(t, Category{}, p.Category)
		assert.Equal(t, []string{}, p.Images)
		assert.False(t, p.IsDeleted)
		require.NotNil(t, p.Comments)
		assert.Empty(t, p.Comments)
	})

	t.Run("non_object_elements_fully_defaulted", func(t *testing.T) {
		products, err := Normalize([]byte(`[1, "junk", {"id": 2, "title": "Kept"}]`))
		require.NoError(t, err)
		require.Len(t, products, 3)

		for _, p := range products[:2] {
			assert.Equal(t, 0, p.ID)
			assert.Equal(t, "", p.Title)
			assert.Equal(t, []string{}, p.Images)
			require.NotNil(t, p.Comments)
			assert.Empty(t, p.Comments)
		}
		assert.Equal(t, 2, products[2].ID)
		assert.Equal(t, "Kept", products[2].Title, "valid siblings survive")
	})

	t.Run("numify_or_zero", func(t *testing.T) {
		products, err := Normalize([]byte(`[
			{"id": "9", "price": "12.5"},
			{"id": "abc", "price": {"amount": 3}},
			{"id": 7.9, "price": -5}
		]`))
		require.NoError(t, err)
		require.Len(t, products, 3)

		assert.Equal(t, 9, products[0].ID)
		assert.Equal(t, 12.5, products[0].Price)
		assert.Equal(t, 0, products[1].ID)
		assert.Equal(t, float64(0), products[1].Price)
		assert.Equal(t, 7, products[2].ID)
		assert.Equal(t, float64(0), products[2].Price, "negative prices default to zero")
	})

	t.Run("stringify_or_empty", func(t *testing.T) {
		products, err := Normalize([]byte(`[
			{"title": 42, "slug": true, "description": {"nested": 1}}
		]`))
		require.NoError(t, err)
		require.Len(t, products, 1)

		assert.Equal(t, "42", products[0].Title)
		assert.Equal(t, "true", products[0].Slug)
		assert.Equal(t, "", products[0].Description)
	})

	t.Run("images_stringified_element_wise", func(t *testing.T) {
		products, err := Normalize([]byte(`[
			{"images": ["https://example.com/a.jpg", 2, true]},
			{"images": "not-an-array"}
		]`))
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, []string{"https://example.com/a.jpg", "2", "true"}, products[0].Images)
		assert.Equal(t, []string{}, products[1].Images)
	})

	t.Run("malformed_category_defaults_per_field", func(t *testing.T) {
		products, err := Normalize([]byte(`[
			{"category": {"id": "4", "name": 99, "slug": null}},
			{"category": "broken"}
		]`))
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, Category{ID: 4, Name: "99"}, products[0].Category)
		assert.Equal(t, Category{}, products[1].Category)
	})

	t.Run("comments_carried_over", func(t *testing.T) {
		products, err := Normalize([]byte(`[
			{"comments": [{"id": "c1", "content": "nice", "author": "bob"}, "junk"]}
		]`))
		require.NoError(t, err)
		require.Len(t, products, 1)
		require.Len(t, products[0].Comments, 1)
		assert.Equal(t, "c1", products[0].Comments[0].ID)
		assert.Equal(t, "nice", products[0].Comments[0].Content)
		assert.Equal(t, "bob", products[0].Comments[0].Author)
	})
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "classic-red-hoodie", Slugify("  Classic   Red Hoodie "))
	assert.Equal(t, "", Slugify("   "))
	assert.Equal(t, "sleek-wireless-headphone", Slugify("Sleek Wireless Headphone"))
}
