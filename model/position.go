package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cost is a resolved lot descriptor: the per-unit acquisition cost, its
// currency, the acquisition date and an optional label. A Cost is fully
// specified and belongs to exactly one Position.
//
// Cost numbers are unsigned by contract; a negative number is rejected by
// the booking and weight computations.
type Cost struct {
	Number   decimal.Decimal
	Currency Currency
	Date     Date
	Label    string
}

// Equal reports whether two costs describe the same lot basis.
func (c Cost) Equal(other Cost) bool {
	return c.Number.Equal(other.Number) &&
		c.Currency == other.Currency &&
		c.Date.Equal(other.Date) &&
		c.Label == other.Label
}

// String renders the cost in its braced form, e.g.
// {183.07 USD, 2014-02-11, "ref-001"}.
func (c Cost) String() string {
	parts := make([]string, 0, 3)
	parts = append(parts, c.Number.String()+" "+string(c.Currency))
	if !c.Date.IsZero() {
		parts = append(parts, c.Date.String())
	}
	if c.Label != "" {
		parts = append(parts, `"`+c.Label+`"`)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// CostSpec is the under-specified cost filter written on a posting. Any
// subset of its fields may be present; every present field must agree with
// a lot's Cost for the lot to match. The empty spec {} matches all lots of
// the commodity. The merge flag {*} requests an average-cost merge.
type CostSpec struct {
	// NumberPer is the optional per-unit cost number.
	NumberPer *decimal.Decimal
	// NumberTotal is the optional total cost number; the booking resolver
	// normalizes it to a per-unit number using the posting's units.
	NumberTotal *decimal.Decimal
	// Currency is the optional cost currency.
	Currency Currency
	// Date is the optional acquisition date.
	Date *Date
	// Label is the optional lot label.
	Label *string
	// MergeCost requests that all lots be merged to their average cost.
	MergeCost bool
}

// IsEmpty reports whether this is the empty specification {}, which matches
// any lot.
func (cs *CostSpec) IsEmpty() bool {
	return cs != nil &&
		cs.NumberPer == nil && cs.NumberTotal == nil &&
		cs.Currency == "" && cs.Date == nil && cs.Label == nil &&
		!cs.MergeCost
}

// Matches reports whether every present field of the spec agrees with the
// cost. NumberTotal is not consulted here; callers resolve it to a per-unit
// number first.
func (cs *CostSpec) Matches(cost Cost) bool {
	if cs == nil {
		return true
	}
	if cs.NumberPer != nil && !cs.NumberPer.Equal(cost.Number) {
		return false
	}
	if cs.Currency != "" && cs.Currency != cost.Currency {
		return false
	}
	if cs.Date != nil && !cs.Date.Equal(cost.Date) {
		return false
	}
	if cs.Label != nil && *cs.Label != cost.Label {
		return false
	}
	return true
}

// String renders the spec in its braced form: {}, {*}, or the present
// fields joined by commas.
func (cs *CostSpec) String() string {
	if cs == nil || cs.IsEmpty() {
		return "{}"
	}
	if cs.MergeCost {
		return "{*}"
	}
	parts := make([]string, 0, 4)
	if cs.NumberPer != nil {
		num := cs.NumberPer.String()
		if cs.Currency != "" {
			num += " " + string(cs.Currency)
		}
		parts = append(parts, num)
	} else if cs.NumberTotal != nil {
		num := "# " + cs.NumberTotal.String()
		if cs.Currency != "" {
			num += " " + string(cs.Currency)
		}
		parts = append(parts, num)
	} else if cs.Currency != "" {
		parts = append(parts, string(cs.Currency))
	}
	if cs.Date != nil {
		parts = append(parts, cs.Date.String())
	}
	if cs.Label != nil {
		parts = append(parts, `"`+*cs.Label+`"`)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Position is one lot held by an account: a number of units, optionally at
// a cost basis. An account's holdings are a multiset of positions.
type Position struct {
	Units Amount
	Cost  *Cost
}

// String renders "20 IVV {183.07 USD, 2014-02-11}" or "1200 USD" for a
// costless position.
func (p Position) String() string {
	if p.Cost == nil {
		return p.Units.String()
	}
	return p.Units.String() + " " + p.Cost.String()
}
