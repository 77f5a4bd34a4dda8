package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		wantErr  bool
	}{
		{
			name:     "valid catalog",
			products: []Product{{Name: "Coffee", Price: 5}, {Name: "Croissant", Price: 8}},
			wantErr:  false,
		},
		{
			name:     "empty catalog is allowed",
			products: nil,
			wantErr:  false,
		},
		{
			name:     "empty name",
			products: []Product{{Name: "", Price: 5}},
			wantErr:  true,
		},
		{
			name:     "non-positive price",
			products: []Product{{Name: "Coffee", Price: 0}},
			wantErr:  true,
		},
		{
			name:     "duplicate name ignoring case",
			products: []Product{{Name: "Coffee", Price: 5}, {Name: "coffee", Price: 6}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"products": [
				{"name": "Coffee", "price": 5.0},
				{"name": "Croissant", "price": 8.0}
			]
		}`), 0o644))

		cat, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cat.Len())
		assert.Equal(t, "Coffee", cat.Products()[0].Name)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))
		_, err := LoadFromFile(path)
		assert.Error(t, err)
	})
}

func TestSearch(t *testing.T) {
	cat, err := New([]Product{
		{Name: "Coffee", Price: 5},
		{Name: "Iced Coffee", Price: 6.5},
		{Name: "Croissant", Price: 8},
	})
	require.NoError(t, err)

	t.Run("case-insensitive substring", func(t *testing.T) {
		matches := cat.Search("COFF")
		require.Len(t, matches, 2)
		assert.Equal(t, "Coffee", matches[0].Name)
		assert.Equal(t, "Iced Coffee", matches[1].Name)
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, cat.Search("pizza"))
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Len(t, cat.Search(""), 3)
	})
}

func TestProductsReturnsACopy(t *testing.T) {
	cat, err := New([]Product{{Name: "Coffee", Price: 5}})
	require.NoError(t, err)

	products := cat.Products()
	products[0].Price = 99

	assert.Equal(t, 5.0, cat.Products()[0].Price)
}
