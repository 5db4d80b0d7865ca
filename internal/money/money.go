package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var ErrTooPrecise = errors.New("amount has more than two decimal places")
var ErrOutOfRange = errors.New("amount out of storable range")

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// FromCents converts a stored minor-unit amount into a decimal.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// ToCents rounds half away from zero to two decimal places. Amounts whose cents do not fit an
// int64 fail with ErrOutOfRange.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, amount)
	}
	return cents.IntPart(), nil
}

// Validate reports whether amount is stored as whole cents without rounding or overflow.
func Validate(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s", ErrTooPrecise, amount)
	}
	_, err := ToCents(amount)
	return err
}

// Parse reads a decimal amount such as "12.50".
func Parse(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}

// Format renders an amount with exactly two decimal places.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
