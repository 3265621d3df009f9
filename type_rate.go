package kapgain

import "github.com/shopspring/decimal"

// Rate is an exchange rate from a trade currency to the reporting currency.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate parses a decimal string into a Rate.
func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, err
	}
	return Rate{value: d}, nil
}

func (r Rate) Equal(p Rate) bool { return r.value.Equal(p.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }
func (r Rate) String() string    { return r.value.String() }

// Convert applies the rate to a trade-currency amount, producing the
// equivalent amount in the given reporting currency.
func (r Rate) Convert(m Money, currency string) Money {
	return Money{value: m.value.Mul(r.value), cur: currency}
}

// Fixed renders the rate rounded half-up to two decimal places.
func (r Rate) Fixed() string { return r.value.StringFixed(2) }
