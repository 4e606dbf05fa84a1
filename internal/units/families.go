package units

// Mass units.
type Mass int

const (
	Gram Mass = iota
	Kilogram
	Ounce
	Pound
)

var massTokens = map[string]Mass{
	"g":   Gram,
	"kg":  Kilogram,
	"oz":  Ounce,
	"lbs": Pound,
}

var massSymbols = [...]string{
	Gram:     "g",
	Kilogram: "kg",
	Ounce:    "oz",
	Pound:    "lbs",
}

func (Mass) Family() Family   { return FamilyMass }
func (m Mass) Symbol() string { return symbol(massSymbols[:], int(m)) }
func (m Mass) String() string { return m.Symbol() }
func (Mass) sealed()          {}

// ParseMass decodes a mass unit token, case-insensitively.
func ParseMass(token string) (Mass, error) {
	if m, ok := lookup(massTokens, token); ok {
		return m, nil
	}
	return 0, &UnitError{Token: token, Family: FamilyMass}
}

// Volume units.
type Volume int

const (
	Milliliter Volume = iota
	Centiliter
	Liter
	Teaspoon
	Tablespoon
	FluidOunce
	Cup
	Gallon
)

var volumeTokens = map[string]Volume{
	"ml":      Milliliter,
	"cl":      Centiliter,
	"l":       Liter,
	"tsp":     Teaspoon,
	"tbsp":    Tablespoon,
	"fl oz":   FluidOunce,
	"fl. oz.": FluidOunce,
	"cup":     Cup,
	"gal":     Gallon,
}

var volumeSymbols = [...]string{
	Milliliter: "mL",
	Centiliter: "cL",
	Liter:      "L",
	Teaspoon:   "tsp",
	Tablespoon: "tbsp",
	FluidOunce: "fl oz",
	Cup:        "cup",
	Gallon:     "gal",
}

func (Volume) Family() Family   { return FamilyVolume }
func (v Volume) Symbol() string { return symbol(volumeSymbols[:], int(v)) }
func (v Volume) String() string { return v.Symbol() }
func (Volume) sealed()          {}

// ParseVolume decodes a volume unit token, case-insensitively.
func ParseVolume(token string) (Volume, error) {
	if v, ok := lookup(volumeTokens, token); ok {
		return v, nil
	}
	return 0, &UnitError{Token: token, Family: FamilyVolume}
}

// Distance units.
type Distance int

const (
	Millimeter Distance = iota
	Centimeter
	Inch
)

var distanceTokens = map[string]Distance{
	"mm": Millimeter,
	"cm": Centimeter,
	"in": Inch,
}

var distanceSymbols = [...]string{
	Millimeter: "mm",
	Centimeter: "cm",
	Inch:       "in",
}

func (Distance) Family() Family   { return FamilyDistance }
func (d Distance) Symbol() string { return symbol(distanceSymbols[:], int(d)) }
func (d Distance) String() string { return d.Symbol() }
func (Distance) sealed()          {}

// ParseDistance decodes a distance unit token, case-insensitively.
func ParseDistance(token string) (Distance, error) {
	if d, ok := lookup(distanceTokens, token); ok {
		return d, nil
	}
	return 0, &UnitError{Token: token, Family: FamilyDistance}
}

// Temperature units.
type Temperature int

const (
	Celsius Temperature = iota
	Fahrenheit
)

var temperatureTokens = map[string]Temperature{
	"°c": Celsius,
	"c":  Celsius,
	"°f": Fahrenheit,
	"f":  Fahrenheit,
}

var temperatureSymbols = [...]string{
	Celsius:    "°C",
	Fahrenheit: "°F",
}

func (Temperature) Family() Family   { return FamilyTemperature }
func (t Temperature) Symbol() string { return symbol(temperatureSymbols[:], int(t)) }
func (t Temperature) String() string { return t.Symbol() }
func (Temperature) sealed()          {}

// ParseTemperature decodes a temperature unit token, case-insensitively.
func ParseTemperature(token string) (Temperature, error) {
	if t, ok := lookup(temperatureTokens, token); ok {
		return t, nil
	}
	return 0, &UnitError{Token: token, Family: FamilyTemperature}
}

// Time units.
type Time int

const (
	Second Time = iota
	Minute
	Hour
)

var timeTokens = map[string]Time{
	"s":       Second,
	"sec":     Second,
	"sec.":    Second,
	"second":  Second,
	"seconds": Second,
	"min":     Minute,
	"min.":    Minute,
	"minute":  Minute,
	"minutes": Minute,
	"h":       Hour,
	"hour":    Hour,
	"hours":   Hour,
}

var timeSymbols = [...]string{
	Second: "s",
	Minute: "min",
	Hour:   "h",
}

func (Time) Family() Family   { return FamilyTime }
func (t Time) Symbol() string { return symbol(timeSymbols[:], int(t)) }
func (t Time) String() string { return t.Symbol() }
func (Time) sealed()          {}

// ParseTime decodes a time unit token, case-insensitively.
func ParseTime(token string) (Time, error) {
	if t, ok := lookup(timeTokens, token); ok {
		return t, nil
	}
	return 0, &UnitError{Token: token, Family: FamilyTime}
}

func symbol(symbols []string, i int) string {
	if i < 0 || i >= len(symbols) {
		return "?"
	}
	return symbols[i]
}
