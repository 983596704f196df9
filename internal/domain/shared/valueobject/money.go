package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	RUB Currency = "RUB" // Russian Ruble (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
)

// DefaultCurrency is the default currency for the catalog
const DefaultCurrency = RUB

// Money is a value object representing monetary amounts
// It is immutable - all operations return new Money instances
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// NewMoneyRUB creates Money in RUB
func NewMoneyRUB(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: RUB}
}

// NewMoneyFromString creates Money in the default currency from a string
// representation as it appears in a shop feed (e.g. "110000.00")
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return Money{amount: d, currency: DefaultCurrency}, nil
}

// ZeroRUB returns a zero-value Money in RUB
func ZeroRUB() Money {
	return Money{amount: decimal.Zero, currency: RUB}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns a new Money with the sum of both amounts
// Returns error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
	}, nil
}

// MustAdd adds two Money values, panics if currencies don't match
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// MultiplyByInt returns a new Money multiplied by an integer quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromInt(factor)),
		currency: m.currency,
	}
}

// Round returns a new Money rounded to the specified decimal places
func (m Money) Round(places int32) Money {
	return Money{
		amount:   m.amount.Round(places),
		currency: m.currency,
	}
}

// Equals returns true if both Money values are equal (same amount and currency)
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the amount formatted with two decimal places
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Value implements driver.Valuer so Money can be stored as a decimal column
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.amount = decimal.Zero
		m.currency = DefaultCurrency
		return nil
	}

	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan money amount: %w", err)
	}

	m.amount = d
	m.currency = DefaultCurrency
	return nil
}
