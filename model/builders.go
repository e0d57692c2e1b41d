package model

// Constructors for programmatically building ledger entities, e.g. from an
// importer or a parser. Each constructor takes an options struct (or the
// required fields directly) enumerating required vs. defaulted fields and
// validates them up front, so call sites never rely on scattered runtime
// defaults.

import (
	"github.com/shopspring/decimal"
)

// OpenOpts configures NewOpen. Date and Account are required; Currencies,
// Booking and Meta are optional.
type OpenOpts struct {
	Date       Date
	Account    Account
	Currencies []Currency
	Booking    *Booking
	Meta       Meta
}

// NewOpen builds an open directive. An empty currency list means no
// restriction on the commodities the account may hold; a nil booking means
// the ledger default method.
func NewOpen(opts OpenOpts) (*Open, error) {
	if opts.Date.IsZero() {
		return nil, &MissingFieldError{Entity: "open", Field: "date"}
	}
	if opts.Account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "open", Field: "account"}
	}
	return &Open{
		Date:       opts.Date,
		Account:    opts.Account,
		Currencies: opts.Currencies,
		Booking:    opts.Booking,
		Meta:       opts.Meta,
	}, nil
}

// NewClose builds a close directive.
func NewClose(date Date, account Account) (*Close, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "close", Field: "date"}
	}
	if account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "close", Field: "account"}
	}
	return &Close{Date: date, Account: account}, nil
}

// NewCommodity builds a commodity declaration.
func NewCommodity(date Date, currency Currency) (*Commodity, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "commodity", Field: "date"}
	}
	if currency == "" {
		return nil, &MissingFieldError{Entity: "commodity", Field: "currency"}
	}
	return &Commodity{Date: date, Currency: currency}, nil
}

// BalanceOpts configures NewBalance. Date, Account and Amount are required;
// Tolerance overrides the inferred tolerance and Meta is optional.
type BalanceOpts struct {
	Date      Date
	Account   Account
	Amount    Amount
	Tolerance *decimal.Decimal
	Meta      Meta
}

// NewBalance builds a balance assertion.
func NewBalance(opts BalanceOpts) (*Balance, error) {
	if opts.Date.IsZero() {
		return nil, &MissingFieldError{Entity: "balance", Field: "date"}
	}
	if opts.Account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "balance", Field: "account"}
	}
	if opts.Amount.Currency == "" {
		return nil, &MissingFieldError{Entity: "balance", Field: "amount"}
	}
	return &Balance{
		Date:      opts.Date,
		Account:   opts.Account,
		Amount:    opts.Amount,
		Tolerance: opts.Tolerance,
		Meta:      opts.Meta,
	}, nil
}

// NewPad builds a pad directive padding account against source.
func NewPad(date Date, account, source Account) (*Pad, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "pad", Field: "date"}
	}
	if account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "pad", Field: "account"}
	}
	if source.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "pad", Field: "source account"}
	}
	return &Pad{Date: date, Account: account, SourceAccount: source}, nil
}

// NewNote builds a note directive.
func NewNote(date Date, account Account, comment string) (*Note, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "note", Field: "date"}
	}
	if account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "note", Field: "account"}
	}
	return &Note{Date: date, Account: account, Comment: comment}, nil
}

// NewDocument builds a document directive.
func NewDocument(date Date, account Account, path string) (*Document, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "document", Field: "date"}
	}
	if account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "document", Field: "account"}
	}
	if path == "" {
		return nil, &MissingFieldError{Entity: "document", Field: "path"}
	}
	return &Document{Date: date, Account: account, Path: path}, nil
}

// NewPrice builds a price point: one unit of currency was worth amount on
// the given date.
func NewPrice(date Date, currency Currency, amount Amount) (*Price, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "price", Field: "date"}
	}
	if currency == "" {
		return nil, &MissingFieldError{Entity: "price", Field: "currency"}
	}
	if amount.Currency == "" {
		return nil, &MissingFieldError{Entity: "price", Field: "amount"}
	}
	return &Price{Date: date, Currency: currency, Amount: amount}, nil
}

// NewEvent builds an event directive.
func NewEvent(date Date, name, description string) (*Event, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "event", Field: "date"}
	}
	if name == "" {
		return nil, &MissingFieldError{Entity: "event", Field: "name"}
	}
	return &Event{Date: date, Name: name, Description: description}, nil
}

// NewQuery builds a stored query directive.
func NewQuery(date Date, name, contents string) (*Query, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "query", Field: "date"}
	}
	if name == "" {
		return nil, &MissingFieldError{Entity: "query", Field: "name"}
	}
	return &Query{Date: date, Name: name, Contents: contents}, nil
}

// NewCustom builds a custom directive.
func NewCustom(date Date, name string, values ...MetaValue) (*Custom, error) {
	if date.IsZero() {
		return nil, &MissingFieldError{Entity: "custom", Field: "date"}
	}
	if name == "" {
		return nil, &MissingFieldError{Entity: "custom", Field: "name"}
	}
	return &Custom{Date: date, Name: name, Values: values}, nil
}

// NewInclude builds an include record.
func NewInclude(filename string) (*Include, error) {
	if filename == "" {
		return nil, &MissingFieldError{Entity: "include", Field: "filename"}
	}
	return &Include{Filename: filename}, nil
}

// NewOption builds an option record.
func NewOption(name, value string) (*Option, error) {
	if name == "" {
		return nil, &MissingFieldError{Entity: "option", Field: "name"}
	}
	return &Option{Name: name, Value: value}, nil
}

// NewPlugin builds a plugin record.
func NewPlugin(module, config string) (*Plugin, error) {
	if module == "" {
		return nil, &MissingFieldError{Entity: "plugin", Field: "module"}
	}
	return &Plugin{Module: module, Config: config}, nil
}

// PostingOpts configures NewPosting. Account is required; everything else
// is optional. A posting with neither number nor currency is the
// auto-balance slot.
type PostingOpts struct {
	Flag       Flag
	Account    Account
	Units      IncompleteAmount
	Cost       *CostSpec
	Price      *IncompleteAmount
	PriceTotal bool
	Meta       Meta
}

// NewPosting builds one transaction leg.
func NewPosting(opts PostingOpts) (*Posting, error) {
	if opts.Account.Type == AccountTypeUnknown {
		return nil, &MissingFieldError{Entity: "posting", Field: "account"}
	}
	if opts.PriceTotal && opts.Price == nil {
		return nil, &MissingFieldError{Entity: "posting", Field: "price"}
	}
	return &Posting{
		Flag:       opts.Flag,
		Account:    opts.Account,
		Units:      opts.Units,
		Cost:       opts.Cost,
		Price:      opts.Price,
		PriceTotal: opts.PriceTotal,
		Meta:       opts.Meta,
	}, nil
}

// TransactionOpts configures NewTransaction. Date and Narration are the
// required surface (Narration may be empty text but must be intended);
// Flag defaults to FlagOkay. Tags and links are deduplicated preserving
// their first occurrence.
type TransactionOpts struct {
	Date      Date
	Flag      Flag
	Payee     string
	Narration string
	Tags      []Tag
	Links     []Link
	Meta      Meta
	Postings  []*Posting
}

// NewTransaction builds a transaction and enforces the structural
// invariant that at most one posting omits its amount.
func NewTransaction(opts TransactionOpts) (*Transaction, error) {
	if opts.Date.IsZero() {
		return nil, &MissingFieldError{Entity: "transaction", Field: "date"}
	}
	flag := opts.Flag
	if flag == "" {
		flag = FlagOkay
	}
	empty := 0
	for _, p := range opts.Postings {
		if !p.Units.HasNum() {
			empty++
		}
	}
	if empty > 1 {
		return nil, &MultipleEmptyPostingsError{Date: opts.Date}
	}
	return &Transaction{
		Date:      opts.Date,
		Flag:      flag,
		Payee:     opts.Payee,
		Narration: opts.Narration,
		Tags:      dedupe(opts.Tags),
		Links:     dedupe(opts.Links),
		Meta:      opts.Meta,
		Postings:  opts.Postings,
	}, nil
}

func dedupe[T comparable](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
