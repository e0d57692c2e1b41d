// Package ledger processes a collection of directives into account state.
// It opens and closes accounts, books postings against lot inventories,
// balances transactions within tolerance, applies pad directives and checks
// balance assertions, collecting every validation error instead of stopping
// at the first.
//
// Example usage:
//
//	doc := buildLedger()
//	l := ledger.New()
//	if err := l.Process(ctx, doc); err != nil {
//	    var verr *ledger.ValidationErrors
//	    if errors.As(err, &verr) {
//	        for _, e := range verr.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/beanmodel-dev/beanmodel/model"
	"github.com/beanmodel-dev/beanmodel/telemetry"
)

// Ledger folds directives into account state. Directives are applied in
// chronological order with same-day ties broken by kind, so an account
// opened and used on the same day works and a balance assertion checks the
// state at the beginning of its date.
type Ledger struct {
	cfg      *Config
	accounts map[string]*Account
	prices   *PriceDB
	resolved []*model.Transaction
	padTxns  []*model.Transaction
	pending  map[string]*model.Pad
	errors   []error
}

// New creates an empty ledger. Options found on the processed document
// override the default configuration.
func New() *Ledger {
	return &Ledger{
		accounts: map[string]*Account{},
		prices:   NewPriceDB(),
		pending:  map[string]*model.Pad{},
	}
}

// NewWithConfig creates a ledger with a fixed configuration; option
// directives on processed documents are then ignored.
func NewWithConfig(cfg *Config) *Ledger {
	l := New()
	l.cfg = cfg
	return l
}

// Process folds the document's directives into the ledger state. The
// directives are processed in sorted order regardless of how the document
// lists them. All validation errors are collected and returned together as
// a *ValidationErrors; state touched by a failing directive is left as it
// was before that directive.
func (l *Ledger) Process(ctx context.Context, doc *model.Ledger) error {
	if l.cfg == nil {
		cfg, err := ConfigFromOptions(doc.Options)
		if err != nil {
			l.errors = append(l.errors, err)
			cfg = NewConfig()
		}
		l.cfg = cfg
	}

	directives := slices.Clone(doc.Directives)
	slices.SortStableFunc(directives, model.CompareDirectives)

	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("ledger.process (%d directives)", len(directives)))
	defer timer.End()

	for _, directive := range directives {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch d := directive.(type) {
		case *model.Open:
			l.processOpen(d)
		case *model.Close:
			l.processClose(d)
		case *model.Transaction:
			l.processTransaction(d)
		case *model.Balance:
			l.processBalance(d)
		case *model.Pad:
			l.processPad(d)
		case *model.Price:
			l.processPrice(d)
		case *model.Note:
			l.requireOpen(d.Account, d.Date)
		case *model.Document:
			l.requireOpen(d.Account, d.Date)
		}
	}

	for _, pad := range l.pending {
		l.errors = append(l.errors, &UnusedPadError{Account: pad.Account, Date: pad.Date})
	}

	if len(l.errors) > 0 {
		return &ValidationErrors{Errors: l.errors}
	}
	return nil
}

func (l *Ledger) processOpen(d *model.Open) {
	name := d.Account.String()
	if existing, ok := l.accounts[name]; ok {
		l.errors = append(l.errors, &AccountAlreadyOpenError{Account: d.Account, Date: d.Date, OpenedOn: existing.OpenedOn})
		return
	}

	booking := l.cfg.DefaultBooking
	if d.Booking != nil {
		booking = *d.Booking
	}
	l.accounts[name] = &Account{
		Name:       d.Account,
		OpenedOn:   d.Date,
		Currencies: d.Currencies,
		Booking:    booking,
		Meta:       d.Meta,
		Inventory:  NewInventory(),
	}
}

func (l *Ledger) processClose(d *model.Close) {
	account, ok := l.accounts[d.Account.String()]
	if !ok {
		l.errors = append(l.errors, &AccountNeverOpenedError{Account: d.Account, Date: d.Date})
		return
	}
	if account.IsClosed() {
		l.errors = append(l.errors, &AccountAlreadyClosedError{Account: d.Account, Date: d.Date, ClosedOn: *account.ClosedOn})
		return
	}
	closed := d.Date
	account.ClosedOn = &closed
}

// requireOpen records an error unless the account accepts activity on the
// date. It reports whether the account was usable.
func (l *Ledger) requireOpen(account model.Account, date model.Date) bool {
	if state, ok := l.accounts[account.String()]; ok && state.IsOpen(date) {
		return true
	}
	l.errors = append(l.errors, &AccountNotOpenError{Account: account, Date: date})
	return false
}

func (l *Ledger) processTransaction(txn *model.Transaction) {
	if !l.checkPostings(txn) {
		return
	}

	resolved, inventories, err := resolveTransaction(txn, l.accounts, l.cfg)
	if err != nil {
		l.errors = append(l.errors, err)
		return
	}
	for name, inv := range inventories {
		l.accounts[name].Inventory = inv
	}
	l.resolved = append(l.resolved, resolved)
	l.recordImpliedPrices(resolved)
}

// checkPostings validates lifecycle and currency constraints for every
// posting before any booking happens, so a transaction is either applied
// in full or not at all.
func (l *Ledger) checkPostings(txn *model.Transaction) bool {
	ok := true
	for _, p := range txn.Postings {
		if !l.requireOpen(p.Account, txn.Date) {
			ok = false
			continue
		}
		account := l.accounts[p.Account.String()]
		if p.Units.HasCurrency() && !account.Allows(p.Units.Currency) {
			l.errors = append(l.errors, &CurrencyNotAllowedError{Account: p.Account, Date: txn.Date, Currency: p.Units.Currency})
			ok = false
		}
	}
	return ok
}

// recordImpliedPrices enters the rates a transaction implies into the
// price database: each posting's cost annotation and its price annotation.
// Total costs and total prices are normalized to per-unit rates first.
func (l *Ledger) recordImpliedPrices(txn *model.Transaction) {
	for _, p := range txn.Postings {
		units, err := p.Units.Complete()
		if err != nil || units.Num.IsZero() {
			continue
		}
		if p.Cost != nil && p.Cost.Currency != "" {
			if rate, ok := costRate(p.Cost, units.Num); ok {
				l.recordRate(txn.Date, units.Currency, rate, p.Cost.Currency)
			}
		}
		if p.Price != nil && p.Price.HasNum() && p.Price.HasCurrency() {
			rate := *p.Price.Num
			if p.PriceTotal {
				rate = rate.Div(units.Num.Abs())
			}
			l.recordRate(txn.Date, units.Currency, rate, p.Price.Currency)
		}
	}
}

// costRate extracts the per-unit rate a cost annotation implies. An empty
// annotation selecting an existing lot carries no number and no rate.
func costRate(spec *model.CostSpec, units decimal.Decimal) (decimal.Decimal, bool) {
	switch {
	case spec.NumberPer != nil:
		return *spec.NumberPer, spec.NumberPer.IsPositive()
	case spec.NumberTotal != nil:
		return spec.NumberTotal.Div(units.Abs()), spec.NumberTotal.IsPositive()
	}
	return decimal.Decimal{}, false
}

func (l *Ledger) recordRate(date model.Date, base model.Currency, rate decimal.Decimal, quote model.Currency) {
	if err := l.prices.Record(date, base, model.NewAmount(rate, quote)); err != nil {
		l.errors = append(l.errors, err)
	}
}

func (l *Ledger) processBalance(d *model.Balance) {
	if !l.requireOpen(d.Account, d.Date) {
		return
	}
	account := l.accounts[d.Account.String()]

	if pad, ok := l.pending[d.Account.String()]; ok {
		delete(l.pending, d.Account.String())
		l.applyPad(pad, d)
		account = l.accounts[d.Account.String()]
	}

	actual := account.Inventory.Units(d.Amount.Currency)
	tolerance := l.assertionTolerance(d)
	if !WithinTolerance(actual.Sub(d.Amount.Num), tolerance) {
		l.errors = append(l.errors, &BalanceMismatchError{
			Account: d.Account, Date: d.Date, Expected: d.Amount, Actual: actual,
		})
	}
}

// assertionTolerance returns an assertion's explicit tolerance, falling
// back to the tolerance inferred from the asserted number's precision.
func (l *Ledger) assertionTolerance(d *model.Balance) decimal.Decimal {
	if d.Tolerance != nil {
		return *d.Tolerance
	}
	return InferTolerance([]decimal.Decimal{d.Amount.Num}, d.Amount.Currency, l.cfg.Tolerance)
}

func (l *Ledger) processPad(d *model.Pad) {
	if !l.requireOpen(d.Account, d.Date) || !l.requireOpen(d.SourceAccount, d.Date) {
		return
	}
	if previous, ok := l.pending[d.Account.String()]; ok {
		l.errors = append(l.errors, &UnusedPadError{Account: previous.Account, Date: previous.Date})
	}
	l.pending[d.Account.String()] = d
}

// applyPad inserts the synthetic transaction that brings the padded
// account to the asserted amount, dated at the pad directive.
func (l *Ledger) applyPad(pad *model.Pad, assertion *model.Balance) {
	account := l.accounts[pad.Account.String()]
	source := l.accounts[pad.SourceAccount.String()]

	diff := assertion.Amount.Num.Sub(account.Inventory.Units(assertion.Amount.Currency))
	if diff.IsZero() {
		return
	}
	currency := assertion.Amount.Currency

	txn := &model.Transaction{
		Date:      pad.Date,
		Flag:      model.FlagPadding,
		Narration: fmt.Sprintf("(Padding inserted for balance of %s)", assertion.Amount),
		Postings: []*model.Posting{
			{Account: pad.Account, Units: model.Incomplete(model.NewAmount(diff, currency))},
			{Account: pad.SourceAccount, Units: model.Incomplete(model.NewAmount(diff.Neg(), currency))},
		},
	}

	account.Inventory = account.Inventory.Add(model.Position{Units: model.NewAmount(diff, currency)})
	source.Inventory = source.Inventory.Add(model.Position{Units: model.NewAmount(diff.Neg(), currency)})
	l.padTxns = append(l.padTxns, txn)
}

func (l *Ledger) processPrice(d *model.Price) {
	if err := l.prices.Record(d.Date, d.Currency, d.Amount); err != nil {
		l.errors = append(l.errors, err)
	}
}

// Account returns the processed state of an account by name.
func (l *Ledger) Account(name string) (*Account, bool) {
	account, ok := l.accounts[name]
	return account, ok
}

// Accounts returns all processed account states keyed by account name.
func (l *Ledger) Accounts() map[string]*Account {
	return l.accounts
}

// Transactions returns the resolved transactions in processing order, each
// with its elided posting filled in.
func (l *Ledger) Transactions() []*model.Transaction {
	return l.resolved
}

// PadTransactions returns the synthetic transactions inserted for pad
// directives.
func (l *Ledger) PadTransactions() []*model.Transaction {
	return l.padTxns
}

// Prices returns the price database accumulated from price directives and
// posting price annotations.
func (l *Ledger) Prices() *PriceDB {
	return l.prices
}

// Errors returns all collected validation errors.
func (l *Ledger) Errors() []error {
	return l.errors
}
