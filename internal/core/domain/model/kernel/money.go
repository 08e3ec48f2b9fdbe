package kernel

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney constructor")

// Money is a non-negative amount expressed in the currency's minor units
// (cents for USD) together with its three-letter currency code.
type Money struct {
	amount   int64
	currency string

	isConstructed bool
}

// NewMoney validates amount >= 0 and a three-letter upper-case currency code.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d must not be negative", amount),
		)
	}
	if !isCurrencyCode(currency) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not a three-letter currency code", currency),
		)
	}

	return Money{amount: amount, currency: currency, isConstructed: true}, nil
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// IsEqual compares amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Validate reports whether the amount came from NewMoney.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.amount/100, m.amount%100, m.currency)
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
