package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/stylin-backend/api/responses"
	"github.com/angelmondragon/stylin-backend/api/validators"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/angelmondragon/stylin-backend/pkg/pagination"
)

// CatalogProducts lists the discovery catalog a page at a time. ?brand= narrows to
// one brand and ?collections=true keeps only collection items.
func CatalogProducts(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		var products []catalog.Product
		switch {
		case strings.EqualFold(query.Get("collections"), "true"):
			products = cat.Collections()
		case strings.TrimSpace(query.Get("brand")) != "":
			products = cat.ByBrand(query.Get("brand"))
		default:
			products = cat.All()
		}

		page, err := pagination.Slice(products, pagination.Params{Limit: limit, Cursor: query.Get("cursor")})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor"))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"products":    page.Items,
			"next_cursor": page.NextCursor,
			"count":       len(products),
		})
	}
}

func CatalogProduct(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, ok := cat.Get(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CatalogBrands(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"brands": cat.Brands()})
	}
}

// CatalogBrand is the brand page: the brand summary and its products.
func CatalogBrand(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := validators.PathParam(r, "brand")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		for _, brand := range cat.Brands() {
			if strings.EqualFold(brand.Name, name) {
				responses.WriteSuccess(w, map[string]any{
					"brand":    brand,
					"products": cat.ByBrand(brand.Name),
				})
				return
			}
		}
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found"))
	}
}
