// Package money wraps exact decimal amounts with Chilean peso display
// formatting. Arithmetic stays in decimal form so repeated deposits and
// transfers never accumulate float drift; formatting goes through the
// go-money currency table.
package money

import (
	"errors"
	"math"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyCode is the display currency for all amounts.
const CurrencyCode = "CLP"

// ErrNotFinite is returned when a float amount is NaN or infinite.
var ErrNotFinite = errors.New("amount is not a finite number")

// Amount is an exact monetary value. The zero value is zero pesos.
type Amount struct {
	value decimal.Decimal
}

// FromFloat converts a float amount, rejecting NaN and infinities.
func FromFloat(f float64) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, ErrNotFinite
	}
	return Amount{value: decimal.NewFromFloat(f)}, nil
}

// FromInt converts an integer amount.
func FromInt(n int64) Amount {
	return Amount{value: decimal.NewFromInt(n)}
}

// Parse reads an amount from its decimal string form, the format String
// produces and the store persists.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }

func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) IsPositive() bool         { return a.value.IsPositive() }
func (a Amount) Equal(b Amount) bool      { return a.value.Equal(b.value) }
func (a Amount) GreaterThan(b Amount) bool { return a.value.GreaterThan(b.value) }

// Float64 returns the nearest float representation, for display tables only.
func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

// String returns the plain decimal form, e.g. "100000". This is the
// persistence format.
func (a Amount) String() string { return a.value.String() }

// Format renders the amount in CLP, e.g. "$100.000".
func (a Amount) Format() string {
	cur := *gomoney.New(0, CurrencyCode).Currency()
	minor := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatFloat renders a raw float as CLP without constructing an Amount.
// Non-finite values render as zero.
func FormatFloat(f float64) string {
	a, err := FromFloat(f)
	if err != nil {
		a = Amount{}
	}
	return a.Format()
}
