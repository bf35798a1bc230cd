package checkout

import (
	"github.com/angelmondragon/stylin-backend/internal/cart"
	"github.com/angelmondragon/stylin-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Quote is the priced checkout summary. Amounts are rounded to two places.
type Quote struct {
	Currency       string               `json:"currency"`
	Items          []cart.LineItem      `json:"items"`
	ItemCount      int                  `json:"item_count"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
	CouponCode     string               `json:"coupon_code,omitempty"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	Shipping       decimal.Decimal      `json:"shipping"`
	Tax            decimal.Decimal      `json:"tax"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
}

// QuoteInput selects the shipping tier and optional coupon.
type QuoteInput struct {
	ShippingMethod string
	CouponCode     string
}

// Pricer computes quotes at a fixed tax rate.
type Pricer struct {
	taxRate  decimal.Decimal
	currency string
}

// NewPricer parses the tax rate, e.g. "0.05".
func NewPricer(taxRate, currency string) (*Pricer, error) {
	rate, err := decimal.NewFromString(taxRate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tax rate")
	}
	if rate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must not be negative")
	}
	if currency == "" {
		currency = "BDT"
	}
	return &Pricer{taxRate: rate, currency: currency}, nil
}

// Quote prices the cart: total = subtotal + shipping + tax - discount, with tax and
// discount both taken on the subtotal.
func (p *Pricer) Quote(state cart.State, in QuoteInput) (Quote, error) {
	if state.Len() == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	method, err := enums.ParseShippingMethod(in.ShippingMethod)
	if err != nil {
		return Quote{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method")
	}
	coupon, err := LookupCoupon(in.CouponCode)
	if err != nil {
		return Quote{}, err
	}

	subtotal := decimal.NewFromInt(state.Total())
	shipping := decimal.NewFromInt(method.Fee())
	tax := subtotal.Mul(p.taxRate)
	discount := coupon.Discount(subtotal)
	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	q := Quote{
		Currency:       p.currency,
		Items:          state.Items(),
		ItemCount:      state.Count(),
		ShippingMethod: method,
		Subtotal:       subtotal.Round(2),
		Shipping:       shipping.Round(2),
		Tax:            tax.Round(2),
		Discount:       discount.Round(2),
		Total:          total.Round(2),
	}
	if coupon != nil {
		q.CouponCode = coupon.Code
	}
	return q, nil
}
