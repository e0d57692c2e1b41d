package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind discriminates the directive sum type. Every consumer switching on
// Kind (or on the concrete types) handles the closed set exhaustively;
// there is no dynamic dispatch beyond it.
type Kind int

const (
	KindOpen Kind = iota
	KindClose
	KindCommodity
	KindTransaction
	KindBalance
	KindPad
	KindNote
	KindDocument
	KindPrice
	KindEvent
	KindQuery
	KindCustom
	KindInclude
	KindOption
	KindPlugin
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	case KindCommodity:
		return "commodity"
	case KindTransaction:
		return "transaction"
	case KindBalance:
		return "balance"
	case KindPad:
		return "pad"
	case KindNote:
		return "note"
	case KindDocument:
		return "document"
	case KindPrice:
		return "price"
	case KindEvent:
		return "event"
	case KindQuery:
		return "query"
	case KindCustom:
		return "custom"
	case KindInclude:
		return "include"
	case KindOption:
		return "option"
	case KindPlugin:
		return "plugin"
	default:
		return "unsupported"
	}
}

// Directive is one declarative entry of the ledger. The sum is closed: only
// types in this package implement it, so switching over the concrete types
// (or Kind) is exhaustive.
type Directive interface {
	Kind() Kind
	String() string

	directive()
}

// Dated is implemented by every directive that carries a date and therefore
// participates in chronological ordering. Include, Option and Plugin are
// undated and processed independently of ledger order.
type Dated interface {
	Directive
	When() Date
}

// Open declares the opening of an account, optionally constraining the
// currencies it may hold and selecting a booking method for lot reduction.
type Open struct {
	Date       Date
	Account    Account
	Currencies []Currency
	// Booking is nil when the account uses the ledger default method.
	Booking *Booking
	Meta    Meta
}

func (o *Open) Kind() Kind { return KindOpen }
func (o *Open) When() Date { return o.Date }
func (o *Open) directive() {}

func (o *Open) String() string {
	var b strings.Builder
	b.WriteString(o.Date.String() + " open " + o.Account.String())
	if len(o.Currencies) > 0 {
		tokens := make([]string, len(o.Currencies))
		for i, c := range o.Currencies {
			tokens[i] = string(c)
		}
		b.WriteString(" " + strings.Join(tokens, ","))
	}
	if o.Booking != nil {
		b.WriteString(` "` + o.Booking.String() + `"`)
	}
	writeMeta(&b, postingIndent, o.Meta)
	return b.String()
}

// Close declares the closing of an account. The account's identity remains;
// closing is a fact layered on top.
type Close struct {
	Date    Date
	Account Account
	Meta    Meta
}

func (c *Close) Kind() Kind { return KindClose }
func (c *Close) When() Date { return c.Date }
func (c *Close) directive() {}

func (c *Close) String() string {
	var b strings.Builder
	b.WriteString(c.Date.String() + " close " + c.Account.String())
	writeMeta(&b, postingIndent, c.Meta)
	return b.String()
}

// Commodity declares a currency so metadata can be attached to it. Entirely
// optional; currencies come into being as they are used.
type Commodity struct {
	Date     Date
	Currency Currency
	Meta     Meta
}

func (c *Commodity) Kind() Kind { return KindCommodity }
func (c *Commodity) When() Date { return c.Date }
func (c *Commodity) directive() {}

func (c *Commodity) String() string {
	var b strings.Builder
	b.WriteString(c.Date.String() + " commodity " + string(c.Currency))
	writeMeta(&b, postingIndent, c.Meta)
	return b.String()
}

// Balance asserts the balance of an account at the beginning of its date,
// before any same-day transactions apply.
type Balance struct {
	Date    Date
	Account Account
	Amount  Amount
	// Tolerance overrides the inferred tolerance for this assertion.
	Tolerance *decimal.Decimal
	Meta      Meta
}

func (b *Balance) Kind() Kind { return KindBalance }
func (b *Balance) When() Date { return b.Date }
func (b *Balance) directive() {}

func (b *Balance) String() string {
	var sb strings.Builder
	sb.WriteString(b.Date.String() + " balance " + b.Account.String() + " ")
	if b.Tolerance != nil {
		sb.WriteString(b.Amount.Num.String() + " ~ " + b.Tolerance.String() + " " + string(b.Amount.Currency))
	} else {
		sb.WriteString(b.Amount.String())
	}
	writeMeta(&sb, postingIndent, b.Meta)
	return sb.String()
}

// Pad inserts a synthetic transaction bringing Account to the balance
// asserted by the next balance directive, posted against SourceAccount.
type Pad struct {
	Date          Date
	Account       Account
	SourceAccount Account
	Meta          Meta
}

func (p *Pad) Kind() Kind { return KindPad }
func (p *Pad) When() Date { return p.Date }
func (p *Pad) directive() {}

func (p *Pad) String() string {
	var b strings.Builder
	b.WriteString(p.Date.String() + " pad " + p.Account.String() + " " + p.SourceAccount.String())
	writeMeta(&b, postingIndent, p.Meta)
	return b.String()
}

// Note attaches a dated comment to an account.
type Note struct {
	Date    Date
	Account Account
	Comment string
	Meta    Meta
}

func (n *Note) Kind() Kind { return KindNote }
func (n *Note) When() Date { return n.Date }
func (n *Note) directive() {}

func (n *Note) String() string {
	var b strings.Builder
	b.WriteString(n.Date.String() + " note " + n.Account.String() + ` "` + n.Comment + `"`)
	writeMeta(&b, postingIndent, n.Meta)
	return b.String()
}

// Document associates an external document path with an account.
type Document struct {
	Date    Date
	Account Account
	Path    string
	Meta    Meta
}

func (d *Document) Kind() Kind { return KindDocument }
func (d *Document) When() Date { return d.Date }
func (d *Document) directive() {}

func (d *Document) String() string {
	var b strings.Builder
	b.WriteString(d.Date.String() + " document " + d.Account.String() + ` "` + d.Path + `"`)
	writeMeta(&b, postingIndent, d.Meta)
	return b.String()
}

// Price establishes a point on a commodity's price curve, e.g.
// "2014-07-09 price HOOL 579.18 USD".
type Price struct {
	Date     Date
	Currency Currency
	Amount   Amount
	Meta     Meta
}

func (p *Price) Kind() Kind { return KindPrice }
func (p *Price) When() Date { return p.Date }
func (p *Price) directive() {}

func (p *Price) String() string {
	var b strings.Builder
	b.WriteString(p.Date.String() + " price " + string(p.Currency) + " " + p.Amount.String())
	writeMeta(&b, postingIndent, p.Meta)
	return b.String()
}

// Event tracks a named value that varies over time, e.g. location or
// employer.
type Event struct {
	Date        Date
	Name        string
	Description string
	Meta        Meta
}

func (e *Event) Kind() Kind { return KindEvent }
func (e *Event) When() Date { return e.Date }
func (e *Event) directive() {}

func (e *Event) String() string {
	var b strings.Builder
	b.WriteString(e.Date.String() + ` event "` + e.Name + `" "` + e.Description + `"`)
	writeMeta(&b, postingIndent, e.Meta)
	return b.String()
}

// Query embeds a named query in the ledger for the reporting layer to run.
// This core stores it verbatim; query evaluation is out of scope.
type Query struct {
	Date     Date
	Name     string
	Contents string
	Meta     Meta
}

func (q *Query) Kind() Kind { return KindQuery }
func (q *Query) When() Date { return q.Date }
func (q *Query) directive() {}

func (q *Query) String() string {
	var b strings.Builder
	b.WriteString(q.Date.String() + ` query "` + q.Name + `" "` + q.Contents + `"`)
	writeMeta(&b, postingIndent, q.Meta)
	return b.String()
}

// Custom is a directive with a user-defined name and typed values, used by
// external plugins. This core stores it without interpretation.
type Custom struct {
	Date   Date
	Name   string
	Values []MetaValue
	Meta   Meta
}

func (c *Custom) Kind() Kind { return KindCustom }
func (c *Custom) When() Date { return c.Date }
func (c *Custom) directive() {}

func (c *Custom) String() string {
	var b strings.Builder
	b.WriteString(c.Date.String() + ` custom "` + c.Name + `"`)
	for _, v := range c.Values {
		b.WriteString(" " + v.String())
	}
	writeMeta(&b, postingIndent, c.Meta)
	return b.String()
}

// Unsupported is a dated directive this core does not interpret. It is kept
// in place so ordering and round-tripping remain stable.
type Unsupported struct {
	Date Date
}

func (u *Unsupported) Kind() Kind { return KindUnsupported }
func (u *Unsupported) When() Date { return u.Date }
func (u *Unsupported) directive() {}
func (u *Unsupported) String() string { return u.Date.String() + " ; unsupported" }

// Include imports directives from another file. Resolving the path and
// loading the file is the loader's concern, not this core's.
type Include struct {
	Filename string
}

func (i *Include) Kind() Kind { return KindInclude }
func (i *Include) directive() {}
func (i *Include) String() string { return `include "` + i.Filename + `"` }

// Option sets a ledger-wide configuration parameter.
type Option struct {
	Name  string
	Value string
}

func (o *Option) Kind() Kind { return KindOption }
func (o *Option) directive() {}
func (o *Option) String() string { return `option "` + o.Name + `" "` + o.Value + `"` }

// Plugin names a processing plugin with an optional configuration string.
// Plugin execution is out of scope; the record is exposed to collaborators.
type Plugin struct {
	Module string
	Config string
}

func (p *Plugin) Kind() Kind { return KindPlugin }
func (p *Plugin) directive() {}

func (p *Plugin) String() string {
	if p.Config == "" {
		return `plugin "` + p.Module + `"`
	}
	return `plugin "` + p.Module + `" "` + p.Config + `"`
}
