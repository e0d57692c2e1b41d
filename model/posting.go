package model

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// currencyColumn is the display column at which posting currencies are
	// aligned when rendering, matching bean-format's default.
	currencyColumn = 52

	// minimumSpacing is the minimum number of spaces between the account
	// name and the number.
	minimumSpacing = 2

	// postingIndent is the indentation of posting lines.
	postingIndent = "  "
)

// Posting is a single leg of a transaction: an account plus an optional
// amount, cost specification and price annotation. One posting of a
// transaction may omit its amount, which is then inferred so the
// transaction balances.
type Posting struct {
	// Flag optionally overrides the transaction flag for this leg.
	Flag Flag
	// Account being posted to.
	Account Account
	// Units being posted, possibly missing number and/or currency.
	Units IncompleteAmount
	// Cost is the optional cost specification ({...}).
	Cost *CostSpec
	// Price is the optional price annotation (@ or @@).
	Price *IncompleteAmount
	// PriceTotal selects total (@@) rather than per-unit (@) price.
	PriceTotal bool
	// Inferred is set on postings whose amount was completed by the
	// balancer rather than written in the input.
	Inferred bool
	// Meta holds metadata attached to the posting.
	Meta Meta
}

// Clone returns a copy of the posting that shares no mutable state with the
// original.
func (p *Posting) Clone() *Posting {
	out := *p
	if p.Units.Num != nil {
		num := *p.Units.Num
		out.Units.Num = &num
	}
	if p.Cost != nil {
		cost := *p.Cost
		out.Cost = &cost
	}
	if p.Price != nil {
		price := *p.Price
		out.Price = &price
	}
	out.Meta = p.Meta.Clone()
	return &out
}

// String renders the posting as one ledger line, with the number aligned so
// the currency begins at the conventional column.
func (p *Posting) String() string {
	var b strings.Builder
	p.render(&b)
	return b.String()
}

func (p *Posting) render(b *strings.Builder) {
	prefix := postingIndent
	if p.Flag != "" {
		prefix += string(p.Flag) + " "
	}
	prefix += p.Account.String()
	b.WriteString(prefix)

	if !p.Units.HasNum() && !p.Units.HasCurrency() {
		return
	}

	num := ""
	if p.Units.Num != nil {
		num = p.Units.Num.String()
	}

	// Pad so that the currency starts at currencyColumn; display widths are
	// measured, not byte lengths, so wide runes in account names stay
	// aligned.
	pad := currencyColumn - 1 - runewidth.StringWidth(num) - runewidth.StringWidth(prefix)
	if pad < minimumSpacing {
		pad = minimumSpacing
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(num)
	if p.Units.HasCurrency() {
		b.WriteString(" ")
		b.WriteString(string(p.Units.Currency))
	}

	if p.Cost != nil {
		b.WriteString(" ")
		b.WriteString(p.Cost.String())
	}
	if p.Price != nil {
		if p.PriceTotal {
			b.WriteString(" @@ ")
		} else {
			b.WriteString(" @ ")
		}
		b.WriteString(p.Price.String())
	}
}
