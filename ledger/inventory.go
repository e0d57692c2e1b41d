package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/beanmodel-dev/beanmodel/model"
)

// Inventory is an immutable multiset of positions keyed by commodity. Every
// mutation returns a fresh Inventory and leaves its receiver untouched, so
// snapshots taken before a transaction stay valid after it.
//
// Per commodity the lots are kept in insertion order; the cost date, not
// the slice order, decides FIFO and LIFO reductions.
type Inventory struct {
	lots map[model.Currency][]model.Position
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{lots: map[model.Currency][]model.Position{}}
}

// clone copies the lot map one level deep. Positions are values, so copying
// the slices is enough.
func (inv *Inventory) clone() *Inventory {
	next := &Inventory{lots: make(map[model.Currency][]model.Position, len(inv.lots))}
	for currency, lots := range inv.lots {
		next.lots[currency] = slices.Clone(lots)
	}
	return next
}

// Add returns an inventory with the position added. A position whose cost
// equals an existing lot's cost merges into that lot; a costless position
// merges into the costless lot. Lots that reach zero units disappear.
func (inv *Inventory) Add(pos model.Position) *Inventory {
	next := inv.clone()
	next.add(pos)
	return next
}

func (inv *Inventory) add(pos model.Position) {
	currency := pos.Units.Currency
	lots := inv.lots[currency]
	for i, lot := range lots {
		if !sameCost(lot.Cost, pos.Cost) {
			continue
		}
		sum := lot.Units.Num.Add(pos.Units.Num)
		if sum.IsZero() {
			inv.lots[currency] = slices.Delete(lots, i, i+1)
			if len(inv.lots[currency]) == 0 {
				delete(inv.lots, currency)
			}
		} else {
			lots[i].Units.Num = sum
		}
		return
	}
	if pos.Units.Num.IsZero() {
		return
	}
	inv.lots[currency] = append(lots, pos)
}

func sameCost(a, b *model.Cost) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// replaceLots returns an inventory with one commodity's lots swapped out.
func (inv *Inventory) replaceLots(currency model.Currency, lots []model.Position) *Inventory {
	next := inv.clone()
	if len(lots) == 0 {
		delete(next.lots, currency)
	} else {
		next.lots[currency] = lots
	}
	return next
}

// Units returns the total number of units of a commodity across all lots.
func (inv *Inventory) Units(currency model.Currency) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range inv.lots[currency] {
		total = total.Add(lot.Units.Num)
	}
	return total
}

// Lots returns the positions held in a commodity, in insertion order. The
// returned slice is a copy.
func (inv *Inventory) Lots(currency model.Currency) []model.Position {
	return slices.Clone(inv.lots[currency])
}

// Currencies returns the commodities with at least one lot, sorted.
func (inv *Inventory) Currencies() []model.Currency {
	currencies := make([]model.Currency, 0, len(inv.lots))
	for currency := range inv.lots {
		currencies = append(currencies, currency)
	}
	slices.Sort(currencies)
	return currencies
}

// IsEmpty reports whether the inventory holds no lots.
func (inv *Inventory) IsEmpty() bool {
	return len(inv.lots) == 0
}

// String renders the positions sorted by commodity, comma separated.
func (inv *Inventory) String() string {
	if inv.IsEmpty() {
		return "(empty)"
	}
	var parts []string
	for _, currency := range inv.Currencies() {
		for _, lot := range inv.lots[currency] {
			parts = append(parts, lot.String())
		}
	}
	return strings.Join(parts, ", ")
}
