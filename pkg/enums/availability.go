package enums

import "fmt"

// Availability denotes whether a wishlist product can currently be bought.
// Values are persisted by ordinal, so the numeric constants are part of the
// storage contract.
type Availability int

const (
	AvailabilityUnavailable Availability = 0
	AvailabilityAvailable   Availability = 1
)

var availabilityNames = map[Availability]string{
	AvailabilityUnavailable: "UNAVAILABLE",
	AvailabilityAvailable:   "AVAILABLE",
}

// String implements fmt.Stringer, returning the canonical enum name.
func (a Availability) String() string {
	if name, ok := availabilityNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Availability(%d)", int(a))
}

// IsValid reports whether the value is a known Availability.
func (a Availability) IsValid() bool {
	_, ok := availabilityNames[a]
	return ok
}

// CoerceAvailability converts raw input into an Availability. Precedence:
// an already-typed value, then a name string matched case-insensitively,
// then a numeric string, then an integer ordinal.
func CoerceAvailability(value any) (Availability, error) {
	parsed, err := coerceEnum(value, availabilityNames)
	if err != nil {
		return 0, fmt.Errorf("invalid type for field status, %w", err)
	}
	return Availability(parsed), nil
}
