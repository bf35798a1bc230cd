package enums

import (
	"fmt"
	"strings"
)

// ShippingMethod is the delivery tier chosen at checkout.
type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodVIP      ShippingMethod = "vip"
	ShippingMethodStylin   ShippingMethod = "stylin"
)

var validShippingMethods = []ShippingMethod{
	ShippingMethodStandard,
	ShippingMethodVIP,
	ShippingMethodStylin,
}

// shippingFees are whole BDT amounts per tier.
var shippingFees = map[ShippingMethod]int64{
	ShippingMethodStandard: 60,
	ShippingMethodVIP:      150,
	ShippingMethodStylin:   300,
}

// String implements fmt.Stringer.
func (s ShippingMethod) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShippingMethod.
func (s ShippingMethod) IsValid() bool {
	for _, candidate := range validShippingMethods {
		if candidate == s {
			return true
		}
	}
	return false
}

// Fee returns the flat shipping charge for the tier; unknown tiers cost nothing.
func (s ShippingMethod) Fee() int64 {
	return shippingFees[s]
}

// ShippingMethods lists the tiers in display order.
func ShippingMethods() []ShippingMethod {
	out := make([]ShippingMethod, len(validShippingMethods))
	copy(out, validShippingMethods)
	return out
}

// ParseShippingMethod converts raw input into a ShippingMethod. Empty input selects standard.
func ParseShippingMethod(value string) (ShippingMethod, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ShippingMethodStandard, nil
	}
	for _, candidate := range validShippingMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping method %q", value)
}
