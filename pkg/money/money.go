// Package money converts between decimal currency amounts and the integer
// minor-unit (cent) representation used in storage.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// ToMinorUnits converts a decimal amount to cents. The third fractional
// digit is rounded half away from zero, so 19.995 becomes 2000. Anything
// beyond two fractional digits is lost.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits converts cents back to a two-decimal-place amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// ParseAmount parses plain decimal text as found in CSV files and request
// payloads, e.g. "19.99".
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
