package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod records how the shopper says they will pay. Nothing is charged.
type PaymentMethod string

const (
	PaymentMethodApplePay PaymentMethod = "apple-pay"
	PaymentMethodPayPal   PaymentMethod = "paypal"
	PaymentMethodVisa     PaymentMethod = "visa"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodApplePay,
	PaymentMethodPayPal,
	PaymentMethodVisa,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
