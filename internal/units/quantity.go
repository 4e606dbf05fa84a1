package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// AmountError reports an amount that is not a finite decimal number.
type AmountError struct {
	Text string
	Err  error
}

func (e *AmountError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid amount %q", e.Text)
	}
	return fmt.Sprintf("invalid amount %q: %v", e.Text, e.Err)
}

func (e *AmountError) Unwrap() error { return e.Err }

// UnitError reports a unit token that the expected family does not know.
type UnitError struct {
	Token  string
	Family Family
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("invalid %s unit %q", e.Family, e.Token)
}

var (
	errEmptyAmount = errors.New("empty amount")
	errNotFinite   = errors.New("amount is not finite")
)

// Quantity is an amount in any unit.
type Quantity struct {
	Unit   Unit
	Amount float64
}

// ParseQuantity splits text into an amount and a unit token at the first
// letter or degree sign. Text without a unit token is a Nominal quantity.
func ParseQuantity(text string) (Quantity, error) {
	amount, token, err := split(text)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Unit: Decode(token), Amount: amount}, nil
}

// Sanitize returns the quantity expressed in the base unit of its family.
func (q Quantity) Sanitize() Quantity {
	u, amount := Sanitize(q.Unit, q.Amount)
	return Quantity{Unit: u, Amount: amount}
}

// String renders the quantity so that ParseQuantity recovers it.
func (q Quantity) String() string {
	return format(q.Amount, q.Unit)
}

// Member lists the unit families a QuantityOf can be restricted to.
type Member interface {
	Mass | Volume | Distance | Temperature | Time
}

// QuantityOf is a quantity whose unit must belong to a single family.
type QuantityOf[U Member] struct {
	Unit   U
	Amount float64
}

// ParseQuantityOf parses text like ParseQuantity but requires the unit token
// to decode within U's family. It returns a *UnitError for a foreign or
// missing unit and an *AmountError for a malformed amount.
func ParseQuantityOf[U Member](text string) (QuantityOf[U], error) {
	amount, token, err := split(text)
	if err != nil {
		return QuantityOf[U]{}, err
	}
	u, err := decodeMember[U](token)
	if err != nil {
		return QuantityOf[U]{}, err
	}
	return QuantityOf[U]{Unit: u, Amount: amount}, nil
}

// Quantity widens q to an untyped Quantity.
func (q QuantityOf[U]) Quantity() Quantity {
	return Quantity{Unit: any(q.Unit).(Unit), Amount: q.Amount}
}

func (q QuantityOf[U]) String() string {
	return format(q.Amount, any(q.Unit).(Unit))
}

// Duration converts a time quantity to a time.Duration.
func Duration(q QuantityOf[Time]) time.Duration {
	var unit time.Duration
	switch q.Unit {
	case Second:
		unit = time.Second
	case Minute:
		unit = time.Minute
	case Hour:
		unit = time.Hour
	}
	return time.Duration(q.Amount * float64(unit))
}

func decodeMember[U Member](token string) (U, error) {
	var u U
	var err error
	switch p := any(&u).(type) {
	case *Mass:
		*p, err = ParseMass(token)
	case *Volume:
		*p, err = ParseVolume(token)
	case *Distance:
		*p, err = ParseDistance(token)
	case *Temperature:
		*p, err = ParseTemperature(token)
	case *Time:
		*p, err = ParseTime(token)
	}
	return u, err
}

func split(text string) (float64, string, error) {
	text = strings.TrimSpace(text)
	idx := strings.IndexFunc(text, func(r rune) bool {
		return unicode.IsLetter(r) || r == '°'
	})
	amountText, token := text, ""
	if idx >= 0 {
		amountText, token = strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx:])
	}
	amount, err := parseAmount(amountText)
	if err != nil {
		return 0, "", err
	}
	return amount, token, nil
}

func parseAmount(text string) (float64, error) {
	if text == "" {
		return 0, &AmountError{Text: text, Err: errEmptyAmount}
	}
	// strconv accepts digit separators and hex floats; recipes only use plain
	// decimal notation.
	for _, r := range text {
		if !(r >= '0' && r <= '9') && r != '.' && r != '+' && r != '-' {
			return 0, &AmountError{Text: text, Err: fmt.Errorf("unexpected character %q", r)}
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &AmountError{Text: text, Err: err}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &AmountError{Text: text, Err: errNotFinite}
	}
	return v, nil
}

func format(amount float64, u Unit) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if u == nil || u.Symbol() == "" {
		return s
	}
	return s + " " + u.Symbol()
}
