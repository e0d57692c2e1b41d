package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/beanmodel-dev/beanmodel/model"
)

// PriceDB is a temporal index of exchange rates with forward-fill lookups:
// a query returns the most recent rate on or before the given date.
//
// Rates are stored bidirectionally. Recording USD -> EUR at 0.92 also
// records EUR -> USD at 1/0.92. Same-currency lookups always return 1.
type PriceDB struct {
	// ratesByDate maps date -> base currency -> quote currency -> rate
	ratesByDate map[model.Date]map[model.Currency]map[model.Currency]decimal.Decimal
	// sortedDates keeps the dates with at least one rate in ascending order
	sortedDates []model.Date
}

// NewPriceDB returns an empty price database.
func NewPriceDB() *PriceDB {
	return &PriceDB{
		ratesByDate: map[model.Date]map[model.Currency]map[model.Currency]decimal.Decimal{},
	}
}

// Record stores a rate for a currency pair on a date, together with its
// inverse. Zero and negative rates are rejected.
func (db *PriceDB) Record(date model.Date, base model.Currency, price model.Amount) error {
	if !price.Num.IsPositive() {
		return &InvalidPriceError{Date: date, Base: base, Price: price}
	}

	if _, ok := db.ratesByDate[date]; !ok {
		db.ratesByDate[date] = map[model.Currency]map[model.Currency]decimal.Decimal{}
		at, _ := slices.BinarySearchFunc(db.sortedDates, date, model.Date.Compare)
		db.sortedDates = slices.Insert(db.sortedDates, at, date)
	}
	day := db.ratesByDate[date]
	if day[base] == nil {
		day[base] = map[model.Currency]decimal.Decimal{}
	}
	if day[price.Currency] == nil {
		day[price.Currency] = map[model.Currency]decimal.Decimal{}
	}

	day[base][price.Currency] = price.Num
	day[price.Currency][base] = decimal.NewFromInt(1).Div(price.Num)
	return nil
}

// Latest returns the most recent rate from base to quote on or before the
// date. It reports false when no such rate was ever recorded.
func (db *PriceDB) Latest(date model.Date, base, quote model.Currency) (decimal.Decimal, bool) {
	if base == quote {
		return decimal.NewFromInt(1), true
	}

	for i := len(db.sortedDates) - 1; i >= 0; i-- {
		at := db.sortedDates[i]
		if at.After(date.Time) {
			continue
		}
		if rate, ok := db.ratesByDate[at][base][quote]; ok {
			return rate, true
		}
	}
	return decimal.Zero, false
}

// Has reports whether a rate exists for the pair on or before the date.
func (db *PriceDB) Has(date model.Date, base, quote model.Currency) bool {
	_, ok := db.Latest(date, base, quote)
	return ok
}

// Convert rewrites an amount into the quote currency using the latest rate
// on or before the date.
func (db *PriceDB) Convert(date model.Date, amount model.Amount, quote model.Currency) (model.Amount, bool) {
	rate, ok := db.Latest(date, amount.Currency, quote)
	if !ok {
		return model.Amount{}, false
	}
	return model.NewAmount(amount.Num.Mul(rate), quote), true
}
