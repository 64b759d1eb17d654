package xirr

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Amount is the signed value of a cash flow: negative for money invested, positive for money
// received. It is kept exact as read and only becomes a float64 when the flows are normalized.
type Amount struct {
	value decimal.Decimal
}

// A returns the Amount for value.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string like "-16000" or "4921.35".
func ParseAmount(str string) (Amount, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(str))
	if err != nil {
		return Amount{}, err
	}
	return Amount{value: v}, nil
}

func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool        { return a.value.IsZero() }
func (a Amount) IsPositive() bool    { return a.value.IsPositive() }
func (a Amount) IsNegative() bool    { return a.value.IsNegative() }
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) String() string      { return a.value.String() }

// Float64 returns the nearest float64 value, used by the solver.
func (a Amount) Float64() float64 { return a.value.InexactFloat64() }

// Format renders the amount in the given ISO 4217 currency (e.g. "USD" gives "$4,921.00").
// Unknown or empty currency codes fall back to the plain decimal rendering with two digits.
func (a Amount) Format(currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return a.value.StringFixed(2)
	}
	dec := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// MarshalJSON writes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and numeric strings.
func (a *Amount) UnmarshalJSON(decimalBytes []byte) error {
	return a.value.UnmarshalJSON(decimalBytes)
}
