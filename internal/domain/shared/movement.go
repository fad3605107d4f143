package shared

import "strings"

// MovementType defines the direction of a stock movement
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// NoValue is the sentinel stored when an optional catalog field carries nothing
const NoValue = "-"

// ParseMovementType normalizes a stored or submitted type string. Older data
// generations carry mixed casing and stray whitespace; anything that does not
// normalize to OUT reads as an inbound movement.
func ParseMovementType(raw string) MovementType {
	if strings.EqualFold(strings.TrimSpace(raw), string(MovementOut)) {
		return MovementOut
	}
	return MovementIn
}

// NameKey computes the normalized lookup key shared by catalog items and
// ledger transactions. Matching is whole-string equality on this key, so
// "Salt" never matches "Sea Salt" while " salt " and "SALT" match each other.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
