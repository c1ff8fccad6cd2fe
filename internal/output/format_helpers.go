package output

import (
	"errors"
	"fmt"
	"math"

	"github.com/careflow/margin-simulator/pkg/decimal"
	shop "github.com/shopspring/decimal"
)

// ErrNonFiniteValue is returned when a formatter receives NaN or an infinity.
var ErrNonFiniteValue = errors.New("cannot format non-finite value")

// FormatCurrency renders value as Brazilian Real with two fraction digits,
// e.g. 1234.5 -> "R$ 1.234,50" (with a no-break space) and -25 -> "-R$ 25,00".
func FormatCurrency(value float64) (string, error) {
	if err := checkFinite(value); err != nil {
		return "", err
	}
	return decimal.NewMoney(value).FormatBRL(), nil
}

// FormatPercentage renders a percentage-point value with one fraction digit and a
// decimal comma, e.g. 70 -> "70,0%" and -50 -> "-50,0%". A negative value that
// rounds to zero prints unsigned as "0,0%", never "-0,0%".
func FormatPercentage(value float64) (string, error) {
	if err := checkFinite(value); err != nil {
		return "", err
	}
	negative, digits := decimal.Localized(shop.NewFromFloat(value), 1, decimal.BrazilianSeparators)
	if negative {
		return "-" + digits + "%", nil
	}
	return digits + "%", nil
}

// FormatHours renders a duration in hours with one decimal, e.g. "5.0h".
func FormatHours(hours float64) (string, error) {
	if err := checkFinite(hours); err != nil {
		return "", err
	}
	return shop.NewFromFloat(hours).StringFixed(1) + "h", nil
}

func checkFinite(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v", ErrNonFiniteValue, value)
	}
	return nil
}
