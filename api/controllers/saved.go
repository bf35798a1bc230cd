package controllers

import (
	"net/http"

	"github.com/angelmondragon/stylin-backend/api/responses"
	"github.com/angelmondragon/stylin-backend/api/validators"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	"github.com/angelmondragon/stylin-backend/internal/saved"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

type savedResponse struct {
	Items []saved.Item `json:"items"`
	Count int          `json:"count"`
}

type toggleSavedResponse struct {
	savedResponse
	Saved bool `json:"saved"`
}

type toggleSavedRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func newSavedResponse(state saved.State) savedResponse {
	return savedResponse{Items: state.Items(), Count: state.Len()}
}

func SavedList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSavedResponse(sess.Saved.Snapshot()))
	}
}

// SavedToggle flips membership of a catalog product and reports where it ended up.
func SavedToggle(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload toggleSavedRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := cat.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		isSaved := sess.Saved.Toggle(saved.ItemFor(product))
		responses.WriteSuccess(w, toggleSavedResponse{
			savedResponse: newSavedResponse(sess.Saved.Snapshot()),
			Saved:         isSaved,
		})
	}
}

func SavedRemove(logg *logger.Logger) http.HandlerFunc {
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

		if !sess.Saved.Remove(id) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not saved"))
			return
		}
		responses.WriteSuccess(w, newSavedResponse(sess.Saved.Snapshot()))
	}
}
