package controllers

import (
	"net/http"

	"github.com/angelmondragon/stylin-backend/api/responses"
	"github.com/angelmondragon/stylin-backend/api/validators"
	"github.com/angelmondragon/stylin-backend/internal/cart"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Count int                `json:"count"`
	Total int64              `json:"total"`
}

type cartLineResponse struct {
	cart.LineItem
	Subtotal int64 `json:"subtotal"`
}

func newCartResponse(state cart.State) cartResponse {
	items := state.Items()
	lines := make([]cartLineResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, cartLineResponse{LineItem: item, Subtotal: item.Subtotal()})
	}
	return cartResponse{Items: lines, Count: state.Count(), Total: state.Total()}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=99"`
}

func CartGet(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess.Cart.Snapshot()))
	}
}

// CartAddItem adds a catalog product to the cart, merging with an existing line.
func CartAddItem(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}
		sess.Cart.AddItem(product, quantity)

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(sess.Cart.Snapshot()))
	}
}

// CartUpdateItem sets a line's quantity. Zero removes the line.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.PathParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !sess.Cart.UpdateQuantity(id, *payload.Quantity) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess.Cart.Snapshot()))
	}
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.PathParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !sess.Cart.RemoveItem(id) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart"))
			return
		}
		responses.WriteSuccess(w, newCartResponse(sess.Cart.Snapshot()))
	}
}

func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.Cart.Clear()
		responses.WriteSuccess(w, newCartResponse(sess.Cart.Snapshot()))
	}
}
