package checkout

import (
	"strings"

	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Coupon is a percentage-off-subtotal code.
type Coupon struct {
	Code    string
	Percent decimal.Decimal
}

var coupons = map[string]Coupon{
	"STYLIN10":  {Code: "STYLIN10", Percent: decimal.NewFromInt(10)},
	"NEWUSER20": {Code: "NEWUSER20", Percent: decimal.NewFromInt(20)},
}

// LookupCoupon resolves a code ignoring case. An empty code means no coupon.
func LookupCoupon(code string) (*Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	c, ok := coupons[code]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon code").WithDetails(map[string]any{"coupon_code": code})
	}
	return &c, nil
}

// Discount is the amount taken off subtotal.
func (c *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	return subtotal.Mul(c.Percent).Div(decimal.NewFromInt(100))
}
