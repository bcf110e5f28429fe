package enums

import "fmt"

// InCartStatus tracks whether a wishlist product has been placed in the
// shopping cart. It only changes through the explicit cart-placement
// operation, never through a generic update.
type InCartStatus int

const (
	InCartStatusDefault InCartStatus = 0
	InCartStatusInCart  InCartStatus = 1
	InCartStatusOrdered InCartStatus = 2
)

var inCartStatusNames = map[InCartStatus]string{
	InCartStatusDefault: "DEFAULT",
	InCartStatusInCart:  "IN_CART",
	InCartStatusOrdered: "ORDERED",
}

// String implements fmt.Stringer, returning the canonical enum name.
func (s InCartStatus) String() string {
	if name, ok := inCartStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("InCartStatus(%d)", int(s))
}

// IsValid reports whether the value is a known InCartStatus.
func (s InCartStatus) IsValid() bool {
	_, ok := inCartStatusNames[s]
	return ok
}

// CoerceInCartStatus converts raw input into an InCartStatus with the same
// precedence rules as CoerceAvailability.
func CoerceInCartStatus(value any) (InCartStatus, error) {
	parsed, err := coerceEnum(value, inCartStatusNames)
	if err != nil {
		return 0, fmt.Errorf("invalid type for field in_cart_status, %w", err)
	}
	return InCartStatus(parsed), nil
}
