package catalog

import (
	"fmt"
	"strings"
)

// Catalog is the ordered, read-only product set loaded at startup.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New validates the products and freezes them into a Catalog.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("product at position %d has no id", i)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate product id %q", id)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has negative price %d", id, p.Price)
		}
		p.ID = id
		c.byID[id] = len(c.products)
		c.products = append(c.products, p.clone())
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// All returns the products in catalog order.
func (c *Catalog) All() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

// Get looks up a product by id.
func (c *Catalog) Get(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[idx].clone(), true
}

// ByBrand returns the brand's products in catalog order. Matching ignores case.
func (c *Catalog) ByBrand(brand string) []Product {
	if c == nil {
		return nil
	}
	brand = strings.TrimSpace(brand)
	out := []Product{}
	for _, p := range c.products {
		if strings.EqualFold(p.Brand, brand) {
			out = append(out, p.clone())
		}
	}
	return out
}

// Brands returns the distinct brands in first-seen order.
func (c *Catalog) Brands() []Brand {
	if c == nil {
		return nil
	}
	index := map[string]int{}
	out := []Brand{}
	for _, p := range c.products {
		key := strings.ToLower(p.Brand)
		if i, ok := index[key]; ok {
			out[i].ProductCount++
			if out[i].Logo == "" {
				out[i].Logo = p.BrandLogo
			}
			continue
		}
		index[key] = len(out)
		out = append(out, Brand{Name: p.Brand, Logo: p.BrandLogo, ProductCount: 1})
	}
	return out
}

// Collections returns the multi-image collection items.
func (c *Catalog) Collections() []Product {
	if c == nil {
		return nil
	}
	out := []Product{}
	for _, p := range c.products {
		if p.IsCollection() {
			out = append(out, p.clone())
		}
	}
	return out
}
