package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/beanmodel-dev/beanmodel/model"
)

// bookPosting applies a posting held at cost to an inventory. It returns
// the updated inventory together with the signed lot changes it made:
// positive positions for created lots, negative positions for consumed
// ones. The changes carry resolved costs, so summing units times cost over
// them yields the posting's weight.
//
// Positive units augment: the cost specification must be complete enough
// to describe a new lot. Negative units reduce: the specification selects
// candidate lots and the account's booking method disambiguates. A booking
// of NONE skips matching entirely and books the nominal lot, mixed signs
// included.
func bookPosting(inv *Inventory, account model.Account, date model.Date, units model.Amount, spec *model.CostSpec, booking model.Booking) (*Inventory, []model.Position, error) {
	spec, err := normalizeSpec(account, date, units, spec)
	if err != nil {
		return nil, nil, err
	}

	if booking == model.BookingNone {
		return bookNominal(inv, account, date, units, spec)
	}

	if units.Num.IsPositive() || units.Num.IsZero() {
		return augmentLot(inv, account, date, units, spec)
	}
	return reduceLots(inv, account, date, units, spec, booking)
}

// normalizeSpec resolves a total cost number into a per-unit number and
// rejects negative cost numbers. The returned spec is a copy; the posting's
// own spec is never modified.
func normalizeSpec(account model.Account, date model.Date, units model.Amount, spec *model.CostSpec) (*model.CostSpec, error) {
	if spec == nil {
		spec = &model.CostSpec{}
	}
	norm := *spec
	if norm.NumberTotal != nil {
		if norm.NumberTotal.IsNegative() {
			return nil, &NegativeCostOrPriceError{Account: account, Date: date, Number: *norm.NumberTotal, Currency: norm.Currency}
		}
		per := decimal.Zero
		if !units.Num.IsZero() {
			per = norm.NumberTotal.Div(units.Num.Abs())
		}
		norm.NumberPer = &per
		norm.NumberTotal = nil
	}
	if norm.NumberPer != nil && norm.NumberPer.IsNegative() {
		return nil, &NegativeCostOrPriceError{Account: account, Date: date, Number: *norm.NumberPer, Currency: norm.Currency}
	}
	return &norm, nil
}

// specCost materializes the concrete lot a specification describes,
// defaulting the acquisition date to the transaction date.
func specCost(date model.Date, spec *model.CostSpec) (model.Cost, bool) {
	if spec.NumberPer == nil || spec.Currency == "" {
		return model.Cost{}, false
	}
	cost := model.Cost{Number: *spec.NumberPer, Currency: spec.Currency, Date: date}
	if spec.Date != nil {
		cost.Date = *spec.Date
	}
	if spec.Label != nil {
		cost.Label = *spec.Label
	}
	return cost, true
}

func bookNominal(inv *Inventory, account model.Account, date model.Date, units model.Amount, spec *model.CostSpec) (*Inventory, []model.Position, error) {
	cost, ok := specCost(date, spec)
	if !ok {
		return nil, nil, &IncompleteCostError{Account: account, Date: date, Spec: spec}
	}
	pos := model.Position{Units: units, Cost: &cost}
	return inv.Add(pos), []model.Position{pos}, nil
}

func augmentLot(inv *Inventory, account model.Account, date model.Date, units model.Amount, spec *model.CostSpec) (*Inventory, []model.Position, error) {
	cost, ok := specCost(date, spec)
	if !ok {
		return nil, nil, &IncompleteCostError{Account: account, Date: date, Spec: spec}
	}
	pos := model.Position{Units: units, Cost: &cost}
	return inv.Add(pos), []model.Position{pos}, nil
}

func reduceLots(inv *Inventory, account model.Account, date model.Date, units model.Amount, spec *model.CostSpec, booking model.Booking) (*Inventory, []model.Position, error) {
	currency := units.Currency
	lots := inv.Lots(currency)
	reduce := units.Num.Abs()

	if spec.MergeCost {
		return reduceAverage(inv, account, date, currency, lots, reduce, spec)
	}

	var candidates []model.Position
	for _, lot := range lots {
		if lot.Cost != nil && spec.Matches(*lot.Cost) {
			candidates = append(candidates, lot)
		}
	}
	if len(candidates) == 0 {
		return nil, nil, &NoMatchingLotError{Account: account, Date: date, Spec: spec}
	}

	total := decimal.Zero
	for _, lot := range candidates {
		total = total.Add(lot.Units.Num)
	}
	if total.LessThan(reduce) {
		return nil, nil, &NegativeHeldAtCostError{
			Account: account, Date: date, Currency: currency,
			Requested: reduce, Available: total,
		}
	}

	// A reduction that exhausts every candidate is never ambiguous.
	if total.Equal(reduce) {
		return consume(inv, currency, candidates, reduce), changesFor(candidates, reduce, currency), nil
	}
	if len(candidates) == 1 {
		return consume(inv, currency, candidates, reduce), changesFor(candidates, reduce, currency), nil
	}

	switch booking {
	case model.BookingStrict:
		return nil, nil, &AmbiguousBookingError{Account: account, Date: date, Spec: spec}

	case model.BookingStrictWithSize:
		var sized []model.Position
		for _, lot := range candidates {
			if lot.Units.Num.Equal(reduce) {
				sized = append(sized, lot)
			}
		}
		if len(sized) != 1 {
			return nil, nil, &AmbiguousBookingError{Account: account, Date: date, Spec: spec}
		}
		return consume(inv, currency, sized, reduce), changesFor(sized, reduce, currency), nil

	case model.BookingFIFO, model.BookingLIFO:
		ordered := slices.Clone(candidates)
		slices.SortStableFunc(ordered, func(a, b model.Position) int {
			return a.Cost.Date.Compare(b.Cost.Date)
		})
		if booking == model.BookingLIFO {
			slices.Reverse(ordered)
		}
		return consume(inv, currency, ordered, reduce), changesFor(ordered, reduce, currency), nil

	case model.BookingAverage:
		return reduceAverage(inv, account, date, currency, candidates, reduce, spec)

	default:
		return nil, nil, &AmbiguousBookingError{Account: account, Date: date, Spec: spec}
	}
}

// consume takes units from the ordered lots until the reduction is
// satisfied and returns the inventory with the remainder.
func consume(inv *Inventory, currency model.Currency, ordered []model.Position, reduce decimal.Decimal) *Inventory {
	remaining := reduce
	consumed := make(map[*model.Cost]decimal.Decimal, len(ordered))
	for _, lot := range ordered {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(lot.Units.Num, remaining)
		consumed[lot.Cost] = take
		remaining = remaining.Sub(take)
	}

	var next []model.Position
	for _, lot := range inv.Lots(currency) {
		if take, ok := consumed[lot.Cost]; ok {
			lot.Units.Num = lot.Units.Num.Sub(take)
			if lot.Units.Num.IsZero() {
				continue
			}
		}
		next = append(next, lot)
	}
	return inv.replaceLots(currency, next)
}

// changesFor returns the signed consumed positions for the same ordered
// walk consume performs.
func changesFor(ordered []model.Position, reduce decimal.Decimal, currency model.Currency) []model.Position {
	remaining := reduce
	var changes []model.Position
	for _, lot := range ordered {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(lot.Units.Num, remaining)
		changes = append(changes, model.Position{
			Units: model.NewAmount(take.Neg(), currency),
			Cost:  lot.Cost,
		})
		remaining = remaining.Sub(take)
	}
	return changes
}

// reduceAverage merges the candidate lots into a single lot at their
// weighted average cost and reduces from it. The merged lot keeps the
// earliest acquisition date. All candidates must share the cost currency.
func reduceAverage(inv *Inventory, account model.Account, date model.Date, currency model.Currency, candidates []model.Position, reduce decimal.Decimal, spec *model.CostSpec) (*Inventory, []model.Position, error) {
	var costed []model.Position
	for _, lot := range candidates {
		if lot.Cost != nil {
			costed = append(costed, lot)
		}
	}
	if len(costed) == 0 {
		return nil, nil, &NoMatchingLotError{Account: account, Date: date, Spec: spec}
	}

	costCurrency := costed[0].Cost.Currency
	earliest := costed[0].Cost.Date
	totalUnits := decimal.Zero
	totalValue := decimal.Zero
	for _, lot := range costed {
		if lot.Cost.Currency != costCurrency {
			return nil, nil, &AmbiguousBookingError{Account: account, Date: date, Spec: spec}
		}
		if lot.Cost.Date.Before(earliest.Time) {
			earliest = lot.Cost.Date
		}
		totalUnits = totalUnits.Add(lot.Units.Num)
		totalValue = totalValue.Add(lot.Units.Num.Mul(lot.Cost.Number))
	}
	if totalUnits.LessThan(reduce) {
		return nil, nil, &NegativeHeldAtCostError{
			Account: account, Date: date, Currency: currency,
			Requested: reduce, Available: totalUnits,
		}
	}

	mean := totalValue.Div(totalUnits)
	merged := model.Cost{Number: mean, Currency: costCurrency, Date: earliest}

	merging := make(map[*model.Cost]bool, len(costed))
	for _, lot := range costed {
		merging[lot.Cost] = true
	}

	remainder := totalUnits.Sub(reduce)
	var next []model.Position
	for _, lot := range inv.Lots(currency) {
		if lot.Cost != nil && merging[lot.Cost] {
			continue
		}
		next = append(next, lot)
	}
	if !remainder.IsZero() {
		next = append(next, model.Position{Units: model.NewAmount(remainder, currency), Cost: &merged})
	}

	change := model.Position{Units: model.NewAmount(reduce.Neg(), currency), Cost: &merged}
	return inv.replaceLots(currency, next), []model.Position{change}, nil
}
