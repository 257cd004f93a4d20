package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// Currencies without a minor unit.
var zeroDecimal = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "ISK": true,
	"JPY": true, "KMF": true, "KRW": true, "PYG": true, "RWF": true,
	"UGX": true, "VND": true, "VUV": true, "XAF": true, "XOF": true,
	"XPF": true,
}

// Money is an amount in minor units (cents) of an ISO 4217 currency.
type Money struct {
	Amount   int64
	Currency string
}

// New validates currency and returns amount in its minor units.
func New(amount int64, currency string) (Money, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if !validCode(code) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}
	return Money{Amount: amount, Currency: code}, nil
}

// EUR returns amount euro cents.
func EUR(amount int64) Money { return Money{Amount: amount, Currency: "EUR"} }

// FromDecimal converts an amount in major units, rounding half away
// from zero to the currency's minor unit.
func FromDecimal(amount decimal.Decimal, currency string) (Money, error) {
	m, err := New(0, currency)
	if err != nil {
		return Money{}, err
	}
	minor := amount.Shift(Exponent(m.Currency)).Round(0)
	if !minor.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: %s %s", ErrAmountOutOfRange, amount.String(), m.Currency)
	}
	m.Amount = minor.IntPart()
	return m, nil
}

// Parse reads a major-unit amount such as "12.50".
func Parse(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return FromDecimal(d, currency)
}

// Exponent is the number of minor-unit digits of a currency.
func Exponent(currency string) int32 {
	if zeroDecimal[strings.ToUpper(currency)] {
		return 0
	}
	return 2
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -Exponent(m.Currency))
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// String renders the major-unit amount and code, e.g. "12.50 EUR".
func (m Money) String() string {
	return m.Decimal().StringFixed(Exponent(m.Currency)) + " " + m.Currency
}

func validCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
