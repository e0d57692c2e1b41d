package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/beanmodel-dev/beanmodel/model"
)

// postingWeight computes the amount a posting contributes to its
// transaction's balance.
//
//	units only            the units themselves
//	units @ price         units times the per-unit price, in the price currency
//	units @@ price        the total price, carrying the sign of the units
//	units at cost         units times cost, summed over the booked lot changes
//
// When both a cost and a price are present the cost decides the weight; the
// price is recorded in the price database but never balances anything.
func postingWeight(p *model.Posting, units model.Amount, changes []model.Position, date model.Date) (model.Amount, error) {
	if p.Cost != nil {
		if p.Price != nil && p.Price.HasNum() && p.Price.Num.IsNegative() {
			return model.Amount{}, &NegativeCostOrPriceError{Account: p.Account, Date: date, Number: *p.Price.Num, Currency: p.Price.Currency}
		}
		total := decimal.Zero
		var currency model.Currency
		for _, change := range changes {
			total = total.Add(change.Units.Num.Mul(change.Cost.Number))
			currency = change.Cost.Currency
		}
		return model.NewAmount(total, currency), nil
	}

	if p.Price != nil {
		price, err := p.Price.Complete()
		if err != nil {
			return model.Amount{}, err
		}
		if price.Num.IsNegative() {
			return model.Amount{}, &NegativeCostOrPriceError{Account: p.Account, Date: date, Number: price.Num, Currency: price.Currency}
		}
		if p.PriceTotal {
			num := price.Num
			if units.Num.IsNegative() {
				num = num.Neg()
			}
			return model.NewAmount(num, price.Currency), nil
		}
		return model.NewAmount(units.Num.Mul(price.Num), price.Currency), nil
	}

	return units, nil
}
