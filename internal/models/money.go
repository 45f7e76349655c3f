package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is a currency amount persisted as numeric(10,2) and serialized as a
// fixed two-fraction-digit decimal string, so amounts never pass through
// binary floats on the wire.
type Money struct {
	decimal.Decimal
}

func (Money) GormDataType() string { return "numeric(10,2)" }

func MoneyFromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f).Round(2)}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d.Round(2)}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.StringFixed(2))
}

// UnmarshalJSON accepts both a JSON number and a decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) > 1 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}
