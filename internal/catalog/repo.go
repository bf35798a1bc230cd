package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/stylin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads and seeds the catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Count returns the number of catalog rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.CatalogProduct{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// List loads every product ordered by position, with collection images.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var rows []models.CatalogProduct
	err := r.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromModel(row))
	}
	return out, nil
}

// Insert writes products in order inside one transaction.
func (r *Repository) Insert(ctx context.Context, products []Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, p := range products {
			row := toModel(i, p)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert product %q: %w", p.ID, err)
			}
		}
		return nil
	})
}

func toModel(position int, p Product) models.CatalogProduct {
	row := models.CatalogProduct{
		ID:         p.ID,
		Position:   position,
		Name:       p.Name,
		Brand:      p.Brand,
		Price:      p.Price,
		Image:      p.Image,
		BrandLogo:  p.BrandLogo,
		Collection: p.Collection,
	}
	for i, img := range p.CollectionImages {
		row.Images = append(row.Images, models.CatalogProductImage{ProductID: p.ID, Position: i, Image: img})
	}
	return row
}

func fromModel(row models.CatalogProduct) Product {
	p := Product{
		ID:         row.ID,
		Name:       row.Name,
		Brand:      row.Brand,
		Price:      row.Price,
		Image:      row.Image,
		BrandLogo:  row.BrandLogo,
		Collection: row.Collection,
	}
	for _, img := range row.Images {
		p.CollectionImages = append(p.CollectionImages, img.Image)
	}
	return p
}
