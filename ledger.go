package kapgain

import (
	"iter"
	"maps"
	"slices"
)

// surrender is the pending state between a negative-quantity SSP/MAS event
// and its resolution. At most one exists per symbol; a second surrender
// before resolution overwrites the first.
type surrender struct {
	Quantity Quantity // absolute quantity surrendered
	Price    Money    // unit price at surrender
}

// Ledger owns the open purchase lots and pending surrenders for every
// instrument during a calculation run. Activities must be fed in
// chronological order per symbol; the ledger does not sort.
type Ledger struct {
	purchases   map[string]lots
	surrendered map[string]surrender
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		purchases:   make(map[string]lots),
		surrendered: make(map[string]surrender),
	}
}

// RecordPurchase appends a new open lot to the symbol's queue. Enqueue order
// is call order; an unknown symbol implicitly gets a queue.
func (l *Ledger) RecordPurchase(symbol string, quantity Quantity, price Money, rate Rate, day Date) {
	l.purchases[symbol] = append(l.purchases[symbol], Lot{
		Price:    price,
		Rate:     rate,
		Quantity: quantity,
		Date:     day,
	})
}

// OpenQuantity returns the total open (unmatched) quantity for a symbol.
func (l *Ledger) OpenQuantity(symbol string) Quantity {
	return l.purchases[symbol].open()
}

// MatchSale computes the FIFO breakdown of selling a quantity of a symbol
// without mutating the ledger. It returns ok=false when the symbol has no
// queue or the queue cannot cover the sale.
func (l *Ledger) MatchSale(symbol string, quantity Quantity) (consumed []Lot, ok bool) {
	queue, found := l.purchases[symbol]
	if !found || len(queue) == 0 {
		return nil, false
	}
	return queue.take(quantity)
}

// CommitSale removes the sold quantity from the symbol's queue. It is the
// mutation counterpart of MatchSale and must be called with the same
// quantity once the sale records have been built.
func (l *Ledger) CommitSale(symbol string, quantity Quantity) {
	remaining := l.purchases[symbol].consume(quantity)
	if remaining == nil {
		delete(l.purchases, symbol)
		return
	}
	l.purchases[symbol] = remaining
}

// Surrender records a pending SSP/MAS surrender for the symbol, overwriting
// any previous pending record.
func (l *Ledger) Surrender(symbol string, quantity Quantity, price Money) {
	l.surrendered[symbol] = surrender{Quantity: quantity, Price: price}
}

// Resolve completes a pending surrender: every open lot of the symbol has
// its quantity multiplied by newQuantity/surrendered quantity and its unit
// price by newPrice/surrendered price, and the pending record is deleted.
// It returns false when no surrender is pending for the symbol.
func (l *Ledger) Resolve(symbol string, newQuantity Quantity, newPrice Money) bool {
	pending, found := l.surrendered[symbol]
	if !found {
		return false
	}
	// A surrender recorded at zero quantity or zero price yields no usable
	// ratio. Discard it and treat the resolution as orphaned.
	if pending.Quantity.IsZero() || pending.Price.IsZero() {
		delete(l.surrendered, symbol)
		return false
	}
	quantityRatio := newQuantity.Div(pending.Quantity)
	priceRatio := newPrice.Decimal().Div(pending.Price.Decimal())
	l.purchases[symbol].rescale(quantityRatio, Q(priceRatio))
	delete(l.surrendered, symbol)
	return true
}

// Residual returns the remaining open lots per symbol after a run, for
// informational and carry-forward purposes. The returned queues are copies;
// mutating them does not affect the ledger.
func (l *Ledger) Residual() map[string][]Lot {
	residual := make(map[string][]Lot, len(l.purchases))
	for symbol, queue := range l.purchases {
		residual[symbol] = slices.Clone(queue)
	}
	return residual
}

// Symbols iterates over the symbols with open lots, in lexical order.
func (l *Ledger) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, symbol := range slices.Sorted(maps.Keys(l.purchases)) {
			if !yield(symbol) {
				return
			}
		}
	}
}
