package catalog

// Product is an immutable catalog record. Price is in whole BDT.
type Product struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Brand            string   `json:"brand" yaml:"brand"`
	Price            int64    `json:"price" yaml:"price"`
	Image            string   `json:"image" yaml:"image"`
	BrandLogo        string   `json:"brand_logo" yaml:"brand_logo"`
	Collection       *string  `json:"collection,omitempty" yaml:"collection,omitempty"`
	CollectionImages []string `json:"collection_images,omitempty" yaml:"collection_images,omitempty"`
}

// IsCollection reports whether the product is presented as a multi-image collection item.
func (p Product) IsCollection() bool {
	return p.Collection != nil && len(p.CollectionImages) > 0
}

func (p Product) clone() Product {
	out := p
	if p.Collection != nil {
		name := *p.Collection
		out.Collection = &name
	}
	if p.CollectionImages != nil {
		out.CollectionImages = append([]string(nil), p.CollectionImages...)
	}
	return out
}

// Brand summarises one brand for the brand pages.
type Brand struct {
	Name         string `json:"name"`
	Logo         string `json:"logo"`
	ProductCount int    `json:"product_count"`
}
