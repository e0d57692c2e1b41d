package model

import (
	"regexp"
)

// maxCurrencyLength is the longest currency token accepted.
const maxCurrencyLength = 24

// currencyPattern matches a currency token: all capitals, starting with a
// capital letter, ending with a capital letter or number, with only capitals,
// numbers or limited punctuation ('._-) in between.
var currencyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9'._-]*[A-Z0-9]$`)

// Currency names a commodity: a real-world currency (USD, EUR), a stock
// ticker (MSFT), or anything else that can be accumulated in an account
// (VACHR, AIRMILE). There is no built-in notion of a special currency; all
// commodities are treated the same. Two currencies are equal iff their
// tokens are identical.
type Currency string

// NewCurrency validates a currency token. The token must be at most 24
// characters long and match [A-Z][A-Z0-9'._-]*[A-Z0-9].
func NewCurrency(s string) (Currency, error) {
	if len(s) > maxCurrencyLength || !currencyPattern.MatchString(s) {
		return "", &InvalidCurrencyError{Token: s}
	}
	return Currency(s), nil
}

// MustCurrency validates a currency token and panics on failure.
func MustCurrency(s string) Currency {
	c, err := NewCurrency(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) String() string {
	return string(c)
}
