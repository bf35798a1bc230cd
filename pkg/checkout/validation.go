package checkout

import (
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
)

// ShippingAddress is the delivery destination captured on the checkout screen.
type ShippingAddress struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// FieldViolation names one missing or malformed address field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

const maxFieldLen = 200

// ValidateShippingAddress requires an address line and city; the label is optional.
func ValidateShippingAddress(addr ShippingAddress) error {
	var violations []FieldViolation
	check := func(field, value string, required bool) {
		value = strings.TrimSpace(value)
		switch {
		case required && value == "":
			violations = append(violations, FieldViolation{Field: field, Reason: "required"})
		case len(value) > maxFieldLen:
			violations = append(violations, FieldViolation{Field: field, Reason: fmt.Sprintf("longer than %d characters", maxFieldLen)})
		}
	}
	check("label", addr.Label, false)
	check("address", addr.Address, true)
	check("city", addr.City, true)

	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("shipping address invalid in %d field(s)", len(violations))).WithDetails(map[string]any{
		"violations": violations,
	})
}

// Normalize trims every field.
func (a ShippingAddress) Normalize() ShippingAddress {
	return ShippingAddress{
		Label:   strings.TrimSpace(a.Label),
		Address: strings.TrimSpace(a.Address),
		City:    strings.TrimSpace(a.City),
	}
}
