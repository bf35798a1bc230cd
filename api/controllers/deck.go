package controllers

import (
	"errors"
	"net/http"

	"github.com/angelmondragon/stylin-backend/api/responses"
	"github.com/angelmondragon/stylin-backend/api/validators"
	"github.com/angelmondragon/stylin-backend/internal/catalog"
	"github.com/angelmondragon/stylin-backend/internal/swipe"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

type deckResponse struct {
	Cursor    int               `json:"cursor"`
	Total     int               `json:"total"`
	Exhausted bool              `json:"exhausted"`
	Phase     string            `json:"phase"`
	Visible   []catalog.Product `json:"visible"`
}

type swipeOutcomeResponse struct {
	Direction string           `json:"direction"`
	Label     string           `json:"label,omitempty"`
	Committed bool             `json:"committed"`
	Product   *catalog.Product `json:"product,omitempty"`
	Cursor    int              `json:"cursor"`
	Exhausted bool             `json:"exhausted"`
	Deck      deckResponse     `json:"deck"`
}

type gestureResponse struct {
	Gesture string `json:"gesture"`
	swipeOutcomeResponse
}

type hintResponse struct {
	Direction string `json:"direction"`
	Label     string `json:"label,omitempty"`
}

type swipeRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type gestureRequest struct {
	Path []swipe.Point `json:"path" validate:"required,min=1,max=512"`
	VX   float64       `json:"vx"`
	VY   float64       `json:"vy"`
}

type hintRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func newDeckResponse(deck *swipe.Deck) deckResponse {
	return deckResponse{
		Cursor:    deck.Cursor(),
		Total:     deck.Len(),
		Exhausted: deck.Exhausted(),
		Phase:     deck.Phase().String(),
		Visible:   deck.Visible(),
	}
}

func newSwipeOutcomeResponse(out swipe.Outcome, deck *swipe.Deck) swipeOutcomeResponse {
	return swipeOutcomeResponse{
		Direction: out.Direction.String(),
		Label:     swipe.Label(out.Direction),
		Committed: out.Committed,
		Product:   out.Product,
		Cursor:    out.Cursor,
		Exhausted: out.Exhausted,
		Deck:      newDeckResponse(deck),
	}
}

func deckError(err error) error {
	switch {
	case errors.Is(err, swipe.ErrExhausted):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "deck exhausted")
	case errors.Is(err, swipe.ErrOutOfPhase):
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "gesture already in progress")
	}
	return err
}

func DeckGet(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDeckResponse(sess.Deck))
	}
}

// DeckSwipe plays a completed drag with its release velocity against the top card.
func DeckSwipe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload swipeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out, err := sess.Swipe(swipe.Release{DX: payload.DX, DY: payload.DY, VX: payload.VX, VY: payload.VY})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, deckError(err))
			return
		}
		responses.WriteSuccess(w, newSwipeOutcomeResponse(out, sess.Deck))
	}
}

// DeckGesture replays a raw pointer path, which resolves to either a tap or a swipe.
func DeckGesture(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload gestureRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, out, err := sess.Gesture(payload.Path, payload.VX, payload.VY)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, deckError(err))
			return
		}
		responses.WriteSuccess(w, gestureResponse{
			Gesture:              kind.String(),
			swipeOutcomeResponse: newSwipeOutcomeResponse(out, sess.Deck),
		})
	}
}

// DeckTap opens the top card's details without moving the deck.
func DeckTap(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := sess.Deck.Tap()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "no card to open"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeckHint returns the overlay label for an in-flight drag offset.
func DeckHint(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload hintRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dir, label := swipe.Hint(payload.DX, payload.DY, sess.Deck.Thresholds())
		responses.WriteSuccess(w, hintResponse{Direction: dir.String(), Label: label})
	}
}
