package models

// CatalogProduct is a row of the read-only product catalog.
type CatalogProduct struct {
	ID         string                `gorm:"column:id;primaryKey"`
	Position   int                   `gorm:"column:position;not null"`
	Name       string                `gorm:"column:name;not null"`
	Brand      string                `gorm:"column:brand;not null"`
	Price      int64                 `gorm:"column:price;not null"`
	Image      string                `gorm:"column:image;not null"`
	BrandLogo  string                `gorm:"column:brand_logo;not null;default:''"`
	Collection *string               `gorm:"column:collection"`
	Images     []CatalogProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (CatalogProduct) TableName() string { return "catalog_products" }

// CatalogProductImage is one ordered image of a collection item.
type CatalogProductImage struct {
	ProductID string `gorm:"column:product_id;primaryKey"`
	Position  int    `gorm:"column:position;primaryKey"`
	Image     string `gorm:"column:image;not null"`
}

func (CatalogProductImage) TableName() string { return "catalog_product_images" }
