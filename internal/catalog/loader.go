package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

// Source yields the raw product list from a backing store.
type Source interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]Product, error)
	Insert(ctx context.Context, products []Product) error
}

// Load builds the catalog. Without a source the embedded seed is served; an empty
// source is populated from the seed first.
func Load(ctx context.Context, src Source, logg *logger.Logger) (*Catalog, error) {
	if src == nil {
		cat, err := Seed()
		if err != nil {
			return nil, err
		}
		logg.Info(logg.WithField(ctx, "products", cat.Len()), "catalog loaded from embedded seed")
		return cat, nil
	}

	n, err := src.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count catalog rows: %w", err)
	}
	if n == 0 {
		seed, err := SeedProducts()
		if err != nil {
			return nil, err
		}
		if _, err := New(seed); err != nil {
			return nil, fmt.Errorf("validate seed: %w", err)
		}
		if err := src.Insert(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logg.Info(logg.WithField(ctx, "products", len(seed)), "empty catalog seeded")
	}

	products, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	cat, err := New(products)
	if err != nil {
		return nil, err
	}
	logg.Info(logg.WithField(ctx, "products", cat.Len()), "catalog loaded from database")
	return cat, nil
}
