package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/beanmodel-dev/beanmodel/model"
)

// resolveTransaction books, weighs and balances one transaction against
// the given account states. It is a pure function of its inputs: the
// account inventories are read but never mutated, and the result carries a
// resolved copy of the transaction (elided amount filled in, flagged
// Inferred) together with the replacement inventory per touched account.
//
// Lifecycle and currency constraint checks belong to the caller; by the
// time a transaction reaches here every posting account is assumed valid.
func resolveTransaction(txn *model.Transaction, accounts map[string]*Account, cfg *Config) (*model.Transaction, map[string]*Inventory, error) {
	resolved := &model.Transaction{
		Date:      txn.Date,
		Flag:      txn.Flag,
		Payee:     txn.Payee,
		Narration: txn.Narration,
		Tags:      txn.Tags,
		Links:     txn.Links,
		Meta:      txn.Meta,
		Postings:  make([]*model.Posting, 0, len(txn.Postings)),
	}

	inventories := map[string]*Inventory{}
	snapshot := func(account model.Account) *Inventory {
		name := account.String()
		if inv, ok := inventories[name]; ok {
			return inv
		}
		if state, ok := accounts[name]; ok && state.Inventory != nil {
			return state.Inventory
		}
		return NewInventory()
	}
	bookingFor := func(account model.Account) model.Booking {
		if state, ok := accounts[account.String()]; ok {
			return state.Booking
		}
		return cfg.DefaultBooking
	}

	residuals := map[model.Currency]decimal.Decimal{}
	numbers := map[model.Currency][]decimal.Decimal{}
	inflated := map[model.Currency]decimal.Decimal{}
	var elided *model.Posting

	for _, p := range txn.Postings {
		if !p.Units.HasNum() {
			if elided != nil {
				return nil, nil, &model.MultipleEmptyPostingsError{Date: txn.Date}
			}
			if p.Cost != nil {
				return nil, nil, &IncompleteCostError{Account: p.Account, Date: txn.Date, Spec: p.Cost}
			}
			elided = p
			continue
		}

		units, err := p.Units.Complete()
		if err != nil {
			return nil, nil, err
		}

		inv := snapshot(p.Account)
		var changes []model.Position
		if p.Cost != nil {
			inv, changes, err = bookPosting(inv, p.Account, txn.Date, units, p.Cost, bookingFor(p.Account))
			if err != nil {
				return nil, nil, err
			}
		} else {
			inv = inv.Add(model.Position{Units: units})
		}
		inventories[p.Account.String()] = inv

		weight, err := postingWeight(p, units, changes, txn.Date)
		if err != nil {
			return nil, nil, err
		}
		residuals[weight.Currency] = residuals[weight.Currency].Add(weight.Num)

		// Only numbers written in the input drive tolerance inference;
		// computed weights carry artificial precision.
		numbers[units.Currency] = append(numbers[units.Currency], units.Num)
		if cfg.Tolerance.inferFromCost {
			for _, change := range changes {
				numbers[change.Cost.Currency] = append(numbers[change.Cost.Currency], change.Cost.Number)
			}
			if p.Price != nil && p.Cost == nil && p.Price.HasNum() {
				numbers[p.Price.Currency] = append(numbers[p.Price.Currency], *p.Price.Num)
			}
		}

		// A price conversion scales the imprecision of the written units
		// into the price currency: the tolerance there covers at least one
		// units quantum at the conversion rate. Integer units carry no
		// quantum of their own.
		if p.Cost == nil && p.Price != nil && p.Price.HasNum() && units.Num.Exponent() < 0 && !units.Num.IsZero() {
			rate := *p.Price.Num
			if p.PriceTotal {
				rate = rate.Div(units.Num.Abs())
			}
			bound := decimal.New(1, units.Num.Exponent()).Mul(rate)
			if bound.GreaterThan(inflated[p.Price.Currency]) {
				inflated[p.Price.Currency] = bound
			}
		}

		resolved.Postings = append(resolved.Postings, p.Clone())
	}

	tolerances := map[model.Currency]decimal.Decimal{}
	toleranceFor := func(currency model.Currency) decimal.Decimal {
		if tol, ok := tolerances[currency]; ok {
			return tol
		}
		tol := InferTolerance(numbers[currency], currency, cfg.Tolerance)
		if bound, ok := inflated[currency]; ok && bound.GreaterThan(tol) {
			tol = bound
		}
		tolerances[currency] = tol
		return tol
	}

	if elided != nil {
		currency, err := inferCurrency(txn, elided, residuals, toleranceFor)
		if err != nil {
			return nil, nil, err
		}
		units := model.NewAmount(residuals[currency].Neg(), currency)

		filled := elided.Clone()
		filled.Units = model.Incomplete(units)
		filled.Inferred = true
		resolved.Postings = append(resolved.Postings, filled)

		inv := snapshot(elided.Account)
		inventories[elided.Account.String()] = inv.Add(model.Position{Units: units})
		residuals[currency] = decimal.Zero
	}

	for currency, residual := range residuals {
		tol := toleranceFor(currency)
		if !WithinTolerance(residual, tol) {
			return nil, nil, &UnbalancedTransactionError{
				Date: txn.Date, Currency: currency, Residual: residual, Tolerance: tol,
			}
		}
	}

	return resolved, inventories, nil
}

// inferCurrency decides which currency the elided posting absorbs. An
// explicit currency on the posting wins; otherwise exactly one currency
// must be left unbalanced beyond tolerance.
func inferCurrency(txn *model.Transaction, elided *model.Posting, residuals map[model.Currency]decimal.Decimal, toleranceFor func(model.Currency) decimal.Decimal) (model.Currency, error) {
	if elided.Units.HasCurrency() {
		return elided.Units.Currency, nil
	}

	var unbalanced []model.Currency
	for currency, residual := range residuals {
		if !WithinTolerance(residual, toleranceFor(currency)) {
			unbalanced = append(unbalanced, currency)
		}
	}
	if len(unbalanced) != 1 {
		return "", &AmbiguousAutobalanceError{Account: elided.Account, Date: txn.Date, Currencies: unbalanced}
	}
	return unbalanced[0], nil
}
