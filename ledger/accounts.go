package ledger

import (
	"github.com/beanmodel-dev/beanmodel/model"

	"golang.org/x/exp/slices"
)

// Account holds the processed state of one account: its lifecycle dates,
// constraints and current inventory.
type Account struct {
	Name       model.Account
	OpenedOn   model.Date
	ClosedOn   *model.Date
	Currencies []model.Currency
	Booking    model.Booking
	Meta       model.Meta
	Inventory  *Inventory
}

// IsOpen reports whether the account accepts postings on the given date.
// Postings are allowed on the close date itself, but not after it.
func (a *Account) IsOpen(date model.Date) bool {
	if a == nil {
		return false
	}
	if a.OpenedOn.After(date.Time) {
		return false
	}
	if a.ClosedOn != nil && date.After(a.ClosedOn.Time) {
		return false
	}
	return true
}

// IsClosed reports whether the account has been closed.
func (a *Account) IsClosed() bool {
	return a != nil && a.ClosedOn != nil
}

// Allows reports whether the currency satisfies the account's constraint
// list. An account opened without currencies allows everything.
func (a *Account) Allows(currency model.Currency) bool {
	if len(a.Currencies) == 0 {
		return true
	}
	return slices.Contains(a.Currencies, currency)
}
