package fixed

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// MarshalJSON encode as quoted decimal string
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted strings and bare numbers
func (n *Number) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return ErrInvalid
	}

	v, err := FromDecimal(d)
	if err != nil {
		return err
	}

	*n = v
	return nil
}

// Scan implements sql.Scanner
func (n *Number) Scan(value interface{}) error {
	if value == nil {
		*n = Zero()
		return nil
	}

	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}

	v, err := FromDecimal(d)
	if err != nil {
		return err
	}

	*n = v
	return nil
}

// Value implements driver.Valuer
func (n Number) Value() (driver.Value, error) {
	return n.String(), nil
}
