package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a non-negative quantity as received from the backend. Valid is
// false when the payload carried no amount or something non-numeric; such
// values count as zero wherever amounts are summed.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// NewAmount wraps a decimal as a valid Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Value: d, Valid: true}
}

// MustAmount builds a valid Amount from a decimal literal. Intended for tests
// and constants.
func MustAmount(s string) Amount {
	return NewAmount(decimal.RequireFromString(s))
}

// OrZero returns the value, or zero for an invalid amount.
func (a Amount) OrZero() decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Value
}

// Equal compares two amounts numerically; invalid amounts only equal each other.
func (a Amount) Equal(b Amount) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Value.Equal(b.Value)
}

// String renders the amount with two decimals, or "" when invalid.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Value.StringFixed(2)
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else
// leaves the amount invalid instead of failing the surrounding document.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	*a = NewAmount(d)
	return nil
}

// MarshalJSON writes the amount as a JSON number, or null when invalid.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}
