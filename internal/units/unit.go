// Package units implements the measurement taxonomy used by recipes: a closed
// set of unit families (nominal, mass, volume, distance, temperature, time),
// a Custom escape hatch for anything else, and quantities built on top of them.
package units

import "strings"

// Family identifies one branch of the unit taxonomy.
type Family int

const (
	FamilyNominal Family = iota
	FamilyMass
	FamilyVolume
	FamilyDistance
	FamilyTemperature
	FamilyTime
	FamilyCustom
)

func (f Family) String() string {
	switch f {
	case FamilyNominal:
		return "nominal"
	case FamilyMass:
		return "mass"
	case FamilyVolume:
		return "volume"
	case FamilyDistance:
		return "distance"
	case FamilyTemperature:
		return "temperature"
	case FamilyTime:
		return "time"
	case FamilyCustom:
		return "custom"
	}
	return "unknown"
}

// Unit is a decoded unit token. The set of implementations is closed:
// Nominal, Mass, Volume, Distance, Temperature, Time and Custom.
type Unit interface {
	Family() Family
	// Symbol is the canonical token for the unit; Decode(Symbol()) returns the
	// same unit.
	Symbol() string
	sealed()
}

// Nominal is the unit of a bare count ("2 eggs"). It only decodes from the
// empty token.
type Nominal struct{}

func (Nominal) Family() Family { return FamilyNominal }
func (Nominal) Symbol() string { return "" }
func (Nominal) String() string { return "nominal" }
func (Nominal) sealed()        {}

// Custom holds a unit token that no family recognised, verbatim.
type Custom string

func (Custom) Family() Family   { return FamilyCustom }
func (c Custom) Symbol() string { return string(c) }
func (c Custom) String() string { return string(c) }
func (Custom) sealed()          {}

// ParseNominal accepts only the empty token.
func ParseNominal(token string) (Nominal, error) {
	if strings.TrimSpace(token) != "" {
		return Nominal{}, &UnitError{Token: token, Family: FamilyNominal}
	}
	return Nominal{}, nil
}

// Decode maps a unit token to a Unit. It never fails: families are tried in
// priority order and the token falls back to Custom when none accepts it.
func Decode(token string) Unit {
	token = strings.TrimSpace(token)
	if u, err := ParseNominal(token); err == nil {
		return u
	}
	if u, err := ParseMass(token); err == nil {
		return u
	}
	if u, err := ParseVolume(token); err == nil {
		return u
	}
	if u, err := ParseDistance(token); err == nil {
		return u
	}
	if u, err := ParseTemperature(token); err == nil {
		return u
	}
	if u, err := ParseTime(token); err == nil {
		return u
	}
	return Custom(token)
}

// Sanitize converts an amount expressed in u to the base unit of u's family.
// Base units, Nominal, Custom and Time units are returned unchanged.
func Sanitize(u Unit, amount float64) (Unit, float64) {
	switch u {
	case Ounce:
		return Gram, 28 * amount
	case Pound:
		return Gram, 450 * amount
	case Teaspoon:
		return Milliliter, 5 * amount
	case Tablespoon:
		return Milliliter, 15 * amount
	case Cup:
		return Milliliter, 240 * amount
	case FluidOunce:
		// Midpoint between the US (29.57) and UK (28.41) fluid ounce.
		return Milliliter, 29 * amount
	case Gallon:
		return Liter, 3.785 * amount
	case Inch:
		return Centimeter, 2.5 * amount
	case Fahrenheit:
		return Celsius, (amount - 32) * 5 / 9
	}
	return u, amount
}

// lookup matches a lower-cased token against a family table.
func lookup[T any](table map[string]T, token string) (T, bool) {
	v, ok := table[strings.ToLower(strings.TrimSpace(token))]
	return v, ok
}
