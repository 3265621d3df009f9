package kapgain

// SaleRecord is one realized sale result. A single sell activity split
// across several purchase lots yields several records sharing the sell side
// fields but differing on the purchase side.
//
// Profit and loss are mutually exclusive: a positive delta is stored as
// profit, anything else (including zero) as loss, where loss keeps the
// non-positive delta. The trade-currency pair follows the same rule
// independently.
type SaleRecord struct {
	Symbol       string
	Quantity     Quantity
	PurchaseDate Date
	SellDate     Date

	PurchaseItemPrice       Money // unit purchase price, trade currency
	PurchasePriceInCurrency Money // quantity * unit price, trade currency
	PurchasePrice           Money // converted to the reporting currency
	PurchaseRate            Rate

	SellItemPrice       Money // unit sell price, trade currency
	SellPriceInCurrency Money // quantity * unit price, trade currency
	SellPrice           Money // converted to the reporting currency
	SellRate            Rate

	Profit           Money
	Loss             Money
	ProfitInCurrency Money
	LossInCurrency   Money
}

// buildSaleRecord combines one consumed lot slice with the triggering sell
// activity, converting both sides with their own exchange rates.
func buildSaleRecord(slice Lot, sell Activity, reportingCurrency string) SaleRecord {
	purchaseInCurrency := slice.Price.Mul(slice.Quantity)
	purchase := slice.Rate.Convert(purchaseInCurrency, reportingCurrency)

	sellInCurrency := sell.Price.Mul(slice.Quantity)
	sellConverted := sell.Rate.Convert(sellInCurrency, reportingCurrency)

	record := SaleRecord{
		Symbol:       sell.Symbol,
		Quantity:     slice.Quantity,
		PurchaseDate: slice.Date,
		SellDate:     sell.TradeDate,

		PurchaseItemPrice:       slice.Price,
		PurchasePriceInCurrency: purchaseInCurrency,
		PurchasePrice:           purchase,
		PurchaseRate:            slice.Rate,

		SellItemPrice:       sell.Price,
		SellPriceInCurrency: sellInCurrency,
		SellPrice:           sellConverted,
		SellRate:            sell.Rate,

		Profit:           M(0, reportingCurrency),
		Loss:             M(0, reportingCurrency),
		ProfitInCurrency: M(0, sell.Price.Currency()),
		LossInCurrency:   M(0, sell.Price.Currency()),
	}

	if delta := sellConverted.Sub(purchase); delta.IsPositive() {
		record.Profit = delta
	} else {
		record.Loss = delta
	}
	if delta := sellInCurrency.Sub(purchaseInCurrency); delta.IsPositive() {
		record.ProfitInCurrency = delta
	} else {
		record.LossInCurrency = delta
	}
	return record
}
