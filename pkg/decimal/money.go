package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with exact decimal rounding for display.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// Round rounds to cents, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the amount with two fixed decimals, e.g. "1234.50".
func (m Money) String() string {
	return m.Round().StringFixed(2)
}

// Separators describes how a locale writes grouped numbers.
type Separators struct {
	Thousands string
	Decimal   string
}

// BrazilianSeparators are the pt-BR grouping and decimal marks.
var BrazilianSeparators = Separators{Thousands: ".", Decimal: ","}

// Localized renders d rounded to places digits with locale separators. The sign is
// returned separately so callers can place it before a currency symbol. A value
// that rounds to zero is never negative.
func Localized(d decimal.Decimal, places int32, sep Separators) (negative bool, digits string) {
	rounded := d.Round(places)
	negative = rounded.IsNegative()
	fixed := rounded.Abs().StringFixed(places)

	intPart, fracPart := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(sep.Thousands)
		b.WriteString(intPart[i : i+3])
	}
	if fracPart != "" {
		b.WriteString(sep.Decimal)
		b.WriteString(fracPart)
	}
	return negative, b.String()
}

// FormatBRL renders the amount as Brazilian Real, e.g. "R$ 1.234,50" or
// "-R$ 25,00".
func (m Money) FormatBRL() string {
	negative, digits := Localized(m.Round().Decimal, 2, BrazilianSeparators)
	if negative {
		return "-R$\u00a0" + digits
	}
	return "R$\u00a0" + digits
}
