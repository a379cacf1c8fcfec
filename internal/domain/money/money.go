// Package money converts between caller-facing decimal amounts and the integer
// units persisted by the storage layer.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	minorPerMajor  = 100
	minutesPerHour = 60
)

var (
	hundred = decimal.NewFromInt(minorPerMajor)
	sixty   = decimal.NewFromInt(minutesPerHour)

	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// ToMinorUnits converts a major-unit amount (19.99) into minor units (1999),
// rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// MinorUnits is ToMinorUnits for caller input: amounts whose minor units do
// not fit the int64 columns are rejected instead of wrapping.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	return fitMinor(amount.Mul(hundred).Round(0))
}

// LineTotal multiplies a unit price in minor units by a quantity.
func LineTotal(unitMinor int64, quantity int64) (int64, error) {
	return fitMinor(decimal.NewFromInt(unitMinor).Mul(decimal.NewFromInt(quantity)))
}

// AddMinor sums two minor-unit amounts, failing on overflow.
func AddMinor(a int64, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOutOfRange, a, b)
	}
	return a + b, nil
}

func fitMinor(minor decimal.Decimal) (int64, error) {
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %s minor units", ErrAmountOutOfRange, minor.String())
	}
	return minor.IntPart(), nil
}

// ToMajorUnits converts minor units back into an exact major-unit amount.
func ToMajorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// HoursToMinutes converts a labour duration in hours into whole minutes.
func HoursToMinutes(hours decimal.Decimal) int64 {
	return hours.Mul(sixty).Round(0).IntPart()
}

// MinutesToHours converts stored minutes into hours rounded to two places.
func MinutesToHours(minutes int64) decimal.Decimal {
	return decimal.NewFromInt(minutes).DivRound(sixty, 2)
}

// ParseMajor parses a user supplied amount such as "19.99" or "£19.99".
func ParseMajor(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "£")
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return amount, nil
}

// OptionalMinor converts an optional amount, keeping nil as nil.
func OptionalMinor(amount *decimal.Decimal) *int64 {
	if amount == nil {
		return nil
	}
	minor := ToMinorUnits(*amount)
	return &minor
}

// OptionalMajor is the read-side counterpart of OptionalMinor.
func OptionalMajor(minor *int64) *decimal.Decimal {
	if minor == nil {
		return nil
	}
	major := ToMajorUnits(*minor)
	return &major
}
