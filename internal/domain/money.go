package domain

import "github.com/shopspring/decimal"

// minorDigits is the number of minor-unit digits for every supported currency.
const minorDigits = 2

var currencies = map[string]struct{}{
	"INR": {},
	"USD": {},
	"EUR": {},
	"GBP": {},
}

// SupportedCurrency reports whether code is an upper-case ISO code with minorDigits decimals.
func SupportedCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}

// ToMinor converts a major-unit amount (e.g. 499.99 rupees) to minor units (49999 paise).
// Sub-minor fractions are rounded half away from zero.
func ToMinor(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, BadInput("amount must not be negative")
	}
	return amount.Shift(minorDigits).Round(0).IntPart(), nil
}

// FromMinor is the inverse of ToMinor.
func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -minorDigits)
}
