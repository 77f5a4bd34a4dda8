package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Product is a purchasable entry with its default price. The catalog never
// changes after load; order items snapshot the price at the time they are added.
type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is the static, ordered product list loaded once at startup.
type Catalog struct {
	products []Product
}

type catalogFile struct {
	Products []Product `json:"products"`
}

func New(products []Product) (*Catalog, error) {
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has an empty name", i)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("catalog entry %q has a non-positive price", p.Name)
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, fmt.Errorf("catalog entry %q is duplicated", p.Name)
		}
		seen[key] = true
	}
	return &Catalog{products: append([]Product(nil), products...)}, nil
}

// LoadFromFile reads a catalog from a JSON file of the form
// {"products": [{"name": ..., "price": ...}, ...]}.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(file.Products)
}

// Products returns the catalog entries in their load order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Search returns every product whose name contains the query, matched
// case-insensitively. An empty query matches the whole catalog.
func (c *Catalog) Search(query string) []Product {
	needle := strings.ToLower(query)
	var matches []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	return matches
}

func (c *Catalog) Len() int {
	return len(c.products)
}
