package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tag marks a subset of transactions for filtering, e.g. #berlin-trip-2014.
type Tag string

// Link groups financially related transactions over time, e.g.
// ^invoice-pepe-studios-jan14.
type Link string

// MetaValue is one metadata value. Exactly one of the pointer fields is
// non-nil, discriminating the value's type.
type MetaValue struct {
	Text     *string
	Account  *Account
	Date     *Date
	Currency *Currency
	Tag      *Tag
	Bool     *bool
	Amount   *Amount
	Number   *decimal.Decimal
}

// MetaText wraps a string value.
func MetaText(s string) MetaValue { return MetaValue{Text: &s} }

// MetaAccount wraps an account value.
func MetaAccount(a Account) MetaValue { return MetaValue{Account: &a} }

// MetaDate wraps a date value.
func MetaDate(d Date) MetaValue { return MetaValue{Date: &d} }

// MetaCurrency wraps a currency value.
func MetaCurrency(c Currency) MetaValue { return MetaValue{Currency: &c} }

// MetaTag wraps a tag value.
func MetaTag(t Tag) MetaValue { return MetaValue{Tag: &t} }

// MetaBool wraps a boolean value.
func MetaBool(b bool) MetaValue { return MetaValue{Bool: &b} }

// MetaAmount wraps an amount value.
func MetaAmount(a Amount) MetaValue { return MetaValue{Amount: &a} }

// MetaNumber wraps a number value.
func MetaNumber(n decimal.Decimal) MetaValue { return MetaValue{Number: &n} }

// Type names the discriminated type of the value.
func (v MetaValue) Type() string {
	switch {
	case v.Text != nil:
		return "text"
	case v.Account != nil:
		return "account"
	case v.Date != nil:
		return "date"
	case v.Currency != nil:
		return "currency"
	case v.Tag != nil:
		return "tag"
	case v.Bool != nil:
		return "bool"
	case v.Amount != nil:
		return "amount"
	case v.Number != nil:
		return "number"
	default:
		return "unknown"
	}
}

func (v MetaValue) String() string {
	switch {
	case v.Text != nil:
		return `"` + *v.Text + `"`
	case v.Account != nil:
		return v.Account.String()
	case v.Date != nil:
		return v.Date.String()
	case v.Currency != nil:
		return string(*v.Currency)
	case v.Tag != nil:
		return "#" + string(*v.Tag)
	case v.Bool != nil:
		if *v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case v.Amount != nil:
		return v.Amount.String()
	case v.Number != nil:
		return v.Number.String()
	default:
		return ""
	}
}

// Meta is the metadata attached to a directive or posting. Keys are unique;
// insertion order is irrelevant.
type Meta map[string]MetaValue

// Keys returns the metadata keys in sorted order, for deterministic
// rendering.
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the metadata map.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
