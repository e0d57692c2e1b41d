package model

import (
	"github.com/shopspring/decimal"
)

// Amount is a number of units of a certain commodity. Amounts use exact
// decimal arithmetic; there is no floating point anywhere in the model.
type Amount struct {
	Num      decimal.Decimal
	Currency Currency
}

// NewAmount creates an Amount from a number and currency.
func NewAmount(num decimal.Decimal, currency Currency) Amount {
	return Amount{Num: num, Currency: currency}
}

// MustAmount parses a decimal string and currency token, panicking on
// failure. Intended for tests.
func MustAmount(num string, currency string) Amount {
	return Amount{Num: decimal.RequireFromString(num), Currency: MustCurrency(currency)}
}

// Compare orders two amounts. Amounts form a strict partial order: they are
// comparable only when their currencies are identical, in which case the
// numbers decide. Cross-currency comparisons report ok=false, never a
// numeric answer; there is no implicit currency conversion anywhere.
func (a Amount) Compare(other Amount) (cmp int, ok bool) {
	if a.Currency != other.Currency {
		return 0, false
	}
	return a.Num.Cmp(other.Num), true
}

// Equal reports whether both amounts have the same currency and number.
func (a Amount) Equal(other Amount) bool {
	cmp, ok := a.Compare(other)
	return ok && cmp == 0
}

// Neg returns the amount with its number negated.
func (a Amount) Neg() Amount {
	return Amount{Num: a.Num.Neg(), Currency: a.Currency}
}

// Add sums two amounts of the same currency. Adding across currencies is
// meaningless and reports ok=false.
func (a Amount) Add(other Amount) (Amount, bool) {
	if a.Currency != other.Currency {
		return Amount{}, false
	}
	return Amount{Num: a.Num.Add(other.Num), Currency: a.Currency}, true
}

// IsZero reports whether the number is zero.
func (a Amount) IsZero() bool {
	return a.Num.IsZero()
}

func (a Amount) String() string {
	return a.Num.String() + " " + string(a.Currency)
}

// IncompleteAmount is an amount that may be missing its number and/or its
// currency, as written on a posting before resolution. It converts to an
// Amount only when both fields are present.
type IncompleteAmount struct {
	// Num is the optional number; nil when missing.
	Num *decimal.Decimal
	// Currency is the optional commodity; empty when missing.
	Currency Currency
}

// Incomplete converts a complete Amount into its incomplete form. The
// conversion round-trips: Complete() returns the original amount.
func Incomplete(a Amount) IncompleteAmount {
	num := a.Num
	return IncompleteAmount{Num: &num, Currency: a.Currency}
}

// HasNum reports whether the number is present.
func (ia IncompleteAmount) HasNum() bool { return ia.Num != nil }

// HasCurrency reports whether the currency is present.
func (ia IncompleteAmount) HasCurrency() bool { return ia.Currency != "" }

// Complete converts to an Amount. It fails with *IncompleteConversionError
// unless both the number and the currency are present.
func (ia IncompleteAmount) Complete() (Amount, error) {
	if ia.Num == nil || ia.Currency == "" {
		return Amount{}, &IncompleteConversionError{Amount: ia}
	}
	return Amount{Num: *ia.Num, Currency: ia.Currency}, nil
}

// Compare orders two incomplete amounts. As with Amount, differing
// currencies are incomparable. A missing number orders before any present
// number.
func (ia IncompleteAmount) Compare(other IncompleteAmount) (cmp int, ok bool) {
	if ia.Currency != other.Currency {
		return 0, false
	}
	switch {
	case ia.Num == nil && other.Num == nil:
		return 0, true
	case ia.Num == nil:
		return -1, true
	case other.Num == nil:
		return 1, true
	default:
		return ia.Num.Cmp(*other.Num), true
	}
}

// String renders "<num> <currency>", substituting 0 for a missing number
// and omitting the currency when absent.
func (ia IncompleteAmount) String() string {
	num := decimal.Zero
	if ia.Num != nil {
		num = *ia.Num
	}
	if ia.Currency == "" {
		return num.String()
	}
	return num.String() + " " + string(ia.Currency)
}
