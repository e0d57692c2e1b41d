package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/beanmodel-dev/beanmodel/model"
)

// Every error below is a deterministic validation failure, not a transient
// fault: nothing is retried, nothing is logged, every failure is returned
// to the caller attributed to the offending directive or posting (date plus
// account context) so the caller can add source positions from its parser.

// ValidationErrors wraps all errors collected while processing a ledger.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for errors.Is/As matching.
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// Booking errors, raised by the lot resolver per posting.

// AmbiguousBookingError is returned when a cost specification matches
// several lots and the account's booking method cannot disambiguate them.
type AmbiguousBookingError struct {
	Account model.Account
	Date    model.Date
	Spec    *model.CostSpec
}

func (e *AmbiguousBookingError) Error() string {
	return fmt.Sprintf("%s: ambiguous matches for %s against %s", e.Date, e.Spec, e.Account)
}

// NoMatchingLotError is returned when a cost specification matches no lot
// held by the account.
type NoMatchingLotError struct {
	Account model.Account
	Date    model.Date
	Spec    *model.CostSpec
}

func (e *NoMatchingLotError) Error() string {
	return fmt.Sprintf("%s: no lot of %s matches %s", e.Date, e.Account, e.Spec)
}

// NegativeHeldAtCostError is returned when a reduction would leave a
// negative quantity of a commodity held at cost. Postings at cost may only
// reduce existing non-negative lots, never flip their sign.
type NegativeHeldAtCostError struct {
	Account   model.Account
	Date      model.Date
	Currency  model.Currency
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *NegativeHeldAtCostError) Error() string {
	return fmt.Sprintf("%s: cannot reduce %s %s from %s: only %s held at cost",
		e.Date, e.Requested, e.Currency, e.Account, e.Available)
}

// NegativeCostOrPriceError is returned for a negative cost or price number.
// Per-share and total costs and prices are always unsigned.
type NegativeCostOrPriceError struct {
	Account  model.Account
	Date     model.Date
	Number   decimal.Decimal
	Currency model.Currency
}

func (e *NegativeCostOrPriceError) Error() string {
	return fmt.Sprintf("%s: negative cost or price %s %s on %s", e.Date, e.Number, e.Currency, e.Account)
}

// IncompleteCostError is returned when an augmenting posting's cost
// specification lacks the number or currency needed to resolve a concrete
// lot.
type IncompleteCostError struct {
	Account model.Account
	Date    model.Date
	Spec    *model.CostSpec
}

func (e *IncompleteCostError) Error() string {
	return fmt.Sprintf("%s: cost %s on %s is incomplete", e.Date, e.Spec, e.Account)
}

// Balancing errors, raised by the transaction balancer. They abort
// acceptance of that single transaction and do not affect other directives.

// UnbalancedTransactionError is returned when a currency's weights do not
// sum to zero within tolerance.
type UnbalancedTransactionError struct {
	Date      model.Date
	Currency  model.Currency
	Residual  decimal.Decimal
	Tolerance decimal.Decimal
}

func (e *UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("%s: transaction does not balance: %s %s (tolerance %s)",
		e.Date, e.Residual, e.Currency, e.Tolerance)
}

// AmbiguousAutobalanceError is returned when the auto-balance posting's
// currency cannot be inferred because zero or several currencies are left
// unbalanced.
type AmbiguousAutobalanceError struct {
	Account    model.Account
	Date       model.Date
	Currencies []model.Currency
}

func (e *AmbiguousAutobalanceError) Error() string {
	return fmt.Sprintf("%s: cannot infer amount for %s: %d currencies unbalanced",
		e.Date, e.Account, len(e.Currencies))
}

// InvalidPriceError is returned for a zero or negative exchange rate.
type InvalidPriceError struct {
	Date  model.Date
	Base  model.Currency
	Price model.Amount
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("%s: invalid price %s for %s", e.Date, e.Price, e.Base)
}

// Account lifecycle errors, raised while folding directives.

// AccountNotOpenError is returned when a directive references an account
// that is not open on its date.
type AccountNotOpenError struct {
	Account model.Account
	Date    model.Date
}

func (e *AccountNotOpenError) Error() string {
	return fmt.Sprintf("%s: invalid reference to unknown or closed account %s", e.Date, e.Account)
}

// AccountAlreadyOpenError is returned when opening an account twice.
type AccountAlreadyOpenError struct {
	Account  model.Account
	Date     model.Date
	OpenedOn model.Date
}

func (e *AccountAlreadyOpenError) Error() string {
	return fmt.Sprintf("%s: account %s is already open (opened on %s)", e.Date, e.Account, e.OpenedOn)
}

// AccountAlreadyClosedError is returned when closing an account twice.
type AccountAlreadyClosedError struct {
	Account  model.Account
	Date     model.Date
	ClosedOn model.Date
}

func (e *AccountAlreadyClosedError) Error() string {
	return fmt.Sprintf("%s: account %s is already closed (closed on %s)", e.Date, e.Account, e.ClosedOn)
}

// AccountNeverOpenedError is returned when closing an account that was
// never opened.
type AccountNeverOpenedError struct {
	Account model.Account
	Date    model.Date
}

func (e *AccountNeverOpenedError) Error() string {
	return fmt.Sprintf("%s: cannot close account %s that was never opened", e.Date, e.Account)
}

// CurrencyNotAllowedError is returned when a posting uses a currency
// outside the account's constraint list.
type CurrencyNotAllowedError struct {
	Account  model.Account
	Date     model.Date
	Currency model.Currency
}

func (e *CurrencyNotAllowedError) Error() string {
	return fmt.Sprintf("%s: currency %s is not allowed on account %s", e.Date, e.Currency, e.Account)
}

// BalanceMismatchError is returned when a balance assertion does not match
// the account's inventory within tolerance.
type BalanceMismatchError struct {
	Account  model.Account
	Date     model.Date
	Expected model.Amount
	Actual   decimal.Decimal
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("%s: balance failed for %s: expected %s, accumulated %s %s",
		e.Date, e.Account, e.Expected, e.Actual, e.Expected.Currency)
}

// UnusedPadError is returned for a pad directive that no later balance
// assertion consumed.
type UnusedPadError struct {
	Account model.Account
	Date    model.Date
}

func (e *UnusedPadError) Error() string {
	return fmt.Sprintf("%s: unused pad directive for %s", e.Date, e.Account)
}
