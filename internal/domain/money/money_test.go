package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, raw := range []string{"19.99", "0.01", "0", "1250", "999999.99", "-4.50"} {
		amount := decimal.RequireFromString(raw)
		minor := ToMinorUnits(amount)
		back := ToMajorUnits(minor)
		if !back.Equal(amount) {
			t.Fatalf("ToMajorUnits(ToMinorUnits(%s)) = %s", raw, back)
		}
	}
}

func TestToMinorUnitsRoundsToNearest(t *testing.T) {
	testCases := []struct {
		in   string
		want int64
	}{
		{in: "19.99", want: 1999},
		{in: "10.005", want: 1001},
		{in: "10.004", want: 1000},
		{in: "-2.345", want: -235},
		{in: "0.1", want: 10},
	}

	for _, testCase := range testCases {
		got := ToMinorUnits(decimal.RequireFromString(testCase.in))
		if got != testCase.want {
			t.Fatalf("ToMinorUnits(%s) = %d, want %d", testCase.in, got, testCase.want)
		}
	}
}

func TestHoursMinutes(t *testing.T) {
	if got := HoursToMinutes(decimal.RequireFromString("1.5")); got != 90 {
		t.Fatalf("HoursToMinutes(1.5) = %d", got)
	}
	if got := HoursToMinutes(decimal.RequireFromString("0.25")); got != 15 {
		t.Fatalf("HoursToMinutes(0.25) = %d", got)
	}
	if got := MinutesToHours(90); !got.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("MinutesToHours(90) = %s", got)
	}
	if got := MinutesToHours(20); !got.Equal(decimal.RequireFromString("0.33")) {
		t.Fatalf("MinutesToHours(20) = %s", got)
	}
}

func TestParseMajor(t *testing.T) {
	got, err := ParseMajor(" £1,234.50 ")
	if err != nil {
		t.Fatalf("ParseMajor() error = %v", err)
	}
	if ToMinorUnits(got) != 123450 {
		t.Fatalf("ParseMajor() = %s", got)
	}

	if _, err := ParseMajor("abc"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("ParseMajor(abc) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := ParseMajor(""); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("ParseMajor(empty) error = %v, want ErrInvalidAmount", err)
	}
}

func TestOptionalConversions(t *testing.T) {
	if OptionalMinor(nil) != nil || OptionalMajor(nil) != nil {
		t.Fatalf("optional conversions must keep nil")
	}
	amount := decimal.RequireFromString("7.25")
	minor := OptionalMinor(&amount)
	if minor == nil || *minor != 725 {
		t.Fatalf("OptionalMinor() = %v", minor)
	}
	back := OptionalMajor(minor)
	if back == nil || !back.Equal(amount) {
		t.Fatalf("OptionalMajor() = %v", back)
	}
}

func TestCheckedMinorArithmetic(t *testing.T) {
	if got, err := MinorUnits(decimal.RequireFromString("19.995")); err != nil || got != 2000 {
		t.Fatalf("MinorUnits() = %d, %v", got, err)
	}
	if _, err := MinorUnits(decimal.RequireFromString("92233720368547758.08")); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("MinorUnits(too large) error = %v, want ErrAmountOutOfRange", err)
	}

	if got, err := LineTotal(1999, 3); err != nil || got != 5997 {
		t.Fatalf("LineTotal() = %d, %v", got, err)
	}
	if _, err := LineTotal(100_000_000, 1_000_000_000_000); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("LineTotal(overflow) error = %v, want ErrAmountOutOfRange", err)
	}

	if got, err := AddMinor(-5, 12); err != nil || got != 7 {
		t.Fatalf("AddMinor() = %d, %v", got, err)
	}
	if _, err := AddMinor(math.MaxInt64-1, 2); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("AddMinor(overflow) error = %v, want ErrAmountOutOfRange", err)
	}
	if _, err := AddMinor(math.MinInt64+1, -2); !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("AddMinor(underflow) error = %v, want ErrAmountOutOfRange", err)
	}
}
