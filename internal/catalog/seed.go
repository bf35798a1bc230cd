package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Products []Product `yaml:"products"`
}

// Seed returns the built-in catalog.
func Seed() (*Catalog, error) {
	return Decode(bytes.NewReader(seedYAML))
}

// SeedProducts returns the built-in product list without validation.
func SeedProducts() ([]Product, error) {
	return decodeProducts(bytes.NewReader(seedYAML))
}

// Decode reads a YAML catalog document and validates it.
func Decode(r io.Reader) (*Catalog, error) {
	products, err := decodeProducts(r)
	if err != nil {
		return nil, err
	}
	return New(products)
}

func decodeProducts(r io.Reader) ([]Product, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var file seedFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return file.Products, nil
}
