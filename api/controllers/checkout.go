package controllers

import (
	"net/http"

	"github.com/angelmondragon/stylin-backend/api/responses"
	"github.com/angelmondragon/stylin-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/stylin-backend/internal/checkout"
	pkgcheckout "github.com/angelmondragon/stylin-backend/pkg/checkout"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

type quoteRequest struct {
	ShippingMethod string `json:"shipping_method" validate:"omitempty,oneof=standard vip stylin"`
	CouponCode     string `json:"coupon_code" validate:"max=32"`
}

type placeOrderRequest struct {
	ShippingAddress pkgcheckout.ShippingAddress `json:"shipping_address"`
	ShippingMethod  string                      `json:"shipping_method" validate:"omitempty,oneof=standard vip stylin"`
	PaymentMethod   string                      `json:"payment_method" validate:"required,oneof=apple-pay paypal visa"`
	CouponCode      string                      `json:"coupon_code" validate:"max=32"`
}

// CheckoutQuote prices the session's current cart without changing it.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), sess.Cart.Snapshot(), checkoutsvc.QuoteInput{
			ShippingMethod: payload.ShippingMethod,
			CouponCode:     payload.CouponCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutPlaceOrder turns the session's cart into an order and empties the cart.
func CheckoutPlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), sess.Buyer(), checkoutsvc.PlaceOrderInput{
			ShippingAddress: payload.ShippingAddress,
			ShippingMethod:  payload.ShippingMethod,
			PaymentMethod:   payload.PaymentMethod,
			CouponCode:      payload.CouponCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
