package kapgain

// Lot represents a single open purchase of an instrument, used for FIFO cost
// basis calculations. Price and Rate are per-unit values captured at purchase
// time; a spin-off resolution may rescale them later.
type Lot struct {
	Price    Money
	Rate     Rate
	Quantity Quantity
	Date     Date
}

// lots is an oldest-first queue of open purchase lots for one instrument.
type lots []Lot

// open returns the total open quantity in the queue.
func (l lots) open() Quantity {
	total := Q(0)
	for _, currentLot := range l {
		total = total.Add(currentLot.Quantity)
	}
	return total
}

// take computes the FIFO breakdown of selling a quantity without mutating the
// queue. It returns the consumed slices, oldest first, whose quantities sum
// to exactly quantityToSell. When the queue cannot cover the sale it returns
// ok=false and no slices: the caller is expected to skip the sale.
func (l lots) take(quantityToSell Quantity) (consumed lots, ok bool) {
	for _, currentLot := range l {
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial consumption of this lot.
			slice := currentLot
			slice.Quantity = quantityToSell
			consumed = append(consumed, slice)
			return consumed, true
		}
		// Full consumption of this lot.
		consumed = append(consumed, currentLot)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		if quantityToSell.IsZero() {
			return consumed, true
		}
	}
	return nil, false
}

// consume commits a sale to the queue, removing quantityToSell from the
// front using FIFO. A lot that only partially covers the remainder is kept
// with its quantity reduced, retaining its original price, rate and date.
func (l lots) consume(quantityToSell Quantity) lots {
	remaining := make(lots, 0, len(l))
	for _, currentLot := range l {
		if quantityToSell.IsZero() {
			remaining = append(remaining, currentLot)
			continue
		}
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			currentLot.Quantity = currentLot.Quantity.Sub(quantityToSell)
			quantityToSell = Q(0)
			remaining = append(remaining, currentLot)
			continue
		}
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	if len(remaining) == 0 {
		return nil
	}
	return remaining
}

// rescale multiplies every open lot's quantity and unit price by the given
// ratios, in place across the whole queue. Used by spin-off and merger
// resolutions to re-establish basis after a share exchange.
func (l lots) rescale(quantityRatio, priceRatio Quantity) {
	for i := range l {
		l[i].Quantity = l[i].Quantity.Mul(quantityRatio)
		l[i].Price = l[i].Price.Mul(priceRatio)
	}
}
