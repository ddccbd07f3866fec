// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates that the input is not a finite decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// Plain notation is used for magnitudes in [plainMin, plainMax).
const (
	plainMin = 1e-3
	plainMax = 1e7
)

// Format renders amount with at least one fractional digit, e.g. 50 as "50.0".
// Magnitudes outside [0.001, 10^7) are rendered in scientific form, e.g. "1.5E7".
func Format(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "NaN"
	case math.IsInf(amount, 1):
		return "Infinity"
	case math.IsInf(amount, -1):
		return "-Infinity"
	case amount == 0:
		if math.Signbit(amount) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(amount)
	if abs < plainMin || abs >= plainMax {
		return scientific(amount)
	}

	return withFraction(decimal.NewFromFloat(amount).String())
}

func scientific(amount float64) string {
	// FormatFloat yields e.g. "1.5E+07" or "1E-04".
	s := strconv.FormatFloat(amount, 'E', -1, 64)

	mantissa, exp, _ := strings.Cut(s, "E")

	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}

	return withFraction(mantissa) + "E" + strconv.Itoa(n)
}

func withFraction(s string) string {
	if strings.Contains(s, ".") {
		return s
	}

	return s + ".0"
}

// ParseAmount parses a user supplied decimal amount.
// NaN, infinities, out of range and malformed input are rejected with ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)

	// decimal accepts only plain decimal syntax, so NaN, Inf and hex floats are refused here.
	if _, err := decimal.NewFromString(s); err != nil {
		return 0, ErrInvalidAmount
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}

	return f, nil
}
