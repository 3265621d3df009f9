package kapgain

import (
	"errors"
	"testing"
)

func buy(symbol string, d Date, quantity, price float64, rate float64) Activity {
	return Activity{Symbol: symbol, Type: Buy, TradeDate: d,
		Quantity: Q(quantity), Price: USD(price), Rate: R(rate)}
}

func sell(symbol string, d Date, quantity, price float64, rate float64) Activity {
	return Activity{Symbol: symbol, Type: Sell, TradeDate: d,
		Quantity: Q(quantity), Price: USD(price), Rate: R(rate)}
}

func TestCalculator_RoundTrip(t *testing.T) {
	// BUY 10 @ $100 (rate 20.0) on day 1; SELL 4 @ $150 (rate 21.0) on day 5.
	sales, residual, err := Czechia().Calculate([]Activity{
		buy("AAPL", day(1), 10, 100, 20),
		sell("AAPL", day(5), 4, 150, 21),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected exactly one sale record, got %d", len(sales))
	}

	sale := sales[0]
	if !sale.Quantity.Equal(Q(4)) {
		t.Errorf("quantity = %s, want 4", sale.Quantity)
	}
	if !sale.PurchasePriceInCurrency.Equal(USD(400)) {
		t.Errorf("purchase price in currency = %s, want 400", sale.PurchasePriceInCurrency.Decimal())
	}
	if !sale.PurchasePrice.Equal(CZK(8000)) {
		t.Errorf("purchase price = %s, want 8000", sale.PurchasePrice.Decimal())
	}
	if !sale.SellPriceInCurrency.Equal(USD(600)) {
		t.Errorf("sell price in currency = %s, want 600", sale.SellPriceInCurrency.Decimal())
	}
	if !sale.SellPrice.Equal(CZK(12600)) {
		t.Errorf("sell price = %s, want 12600", sale.SellPrice.Decimal())
	}
	if !sale.Profit.Equal(CZK(4600)) {
		t.Errorf("profit = %s, want 4600", sale.Profit.Decimal())
	}
	if !sale.ProfitInCurrency.Equal(USD(200)) {
		t.Errorf("profit in currency = %s, want 200", sale.ProfitInCurrency.Decimal())
	}
	if !sale.Loss.IsZero() || !sale.LossInCurrency.IsZero() {
		t.Errorf("loss fields should be zero on a profitable sale: %s / %s", sale.Loss.Decimal(), sale.LossInCurrency.Decimal())
	}
	if sale.PurchaseDate != day(1) || sale.SellDate != day(5) {
		t.Errorf("dates = %s/%s, want %s/%s", sale.PurchaseDate, sale.SellDate, day(1), day(5))
	}

	queue := residual["AAPL"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(6)) || !queue[0].Price.Equal(USD(100)) {
		t.Errorf("residual queue = %+v, want one lot of 6 @ $100", queue)
	}
}

func TestCalculator_SplitSell(t *testing.T) {
	// BUY 5 @ $10 day1, BUY 5 @ $12 day2; SELL 8 @ $20 day3.
	sales, residual, err := Czechia().Calculate([]Activity{
		buy("AAPL", day(1), 5, 10, 20),
		buy("AAPL", day(2), 5, 12, 20),
		sell("AAPL", day(3), 8, 20, 20),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(sales) != 2 {
		t.Fatalf("expected two sale records, got %d", len(sales))
	}

	if !sales[0].Quantity.Equal(Q(5)) || !sales[0].PurchaseItemPrice.Equal(USD(10)) {
		t.Errorf("slice 1 = qty %s @ %s, want 5 @ $10", sales[0].Quantity, sales[0].PurchaseItemPrice.Decimal())
	}
	if !sales[1].Quantity.Equal(Q(3)) || !sales[1].PurchaseItemPrice.Equal(USD(12)) {
		t.Errorf("slice 2 = qty %s @ %s, want 3 @ $12", sales[1].Quantity, sales[1].PurchaseItemPrice.Decimal())
	}
	// Both records share the sell side.
	if sales[0].SellDate != sales[1].SellDate || !sales[0].SellItemPrice.Equal(sales[1].SellItemPrice) {
		t.Error("records of one sell should share sell date and price")
	}

	queue := residual["AAPL"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(2)) || !queue[0].Price.Equal(USD(12)) {
		t.Errorf("residual queue = %+v, want one lot of 2 @ $12", queue)
	}
}

func TestCalculator_InsufficientLotsSkipsSale(t *testing.T) {
	sales, residual, err := Czechia().Calculate([]Activity{
		sell("GHOST", day(1), 4, 150, 21),
	})
	if err != nil {
		t.Fatalf("a sale without purchase history must not error, got %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("expected zero sale records, got %v", sales)
	}
	if len(residual) != 0 {
		t.Errorf("expected no residual, got %v", residual)
	}
}

func TestCalculator_PartialCoverageSkipsWholeSale(t *testing.T) {
	// 3 open, sell 5: no partial record, and the queue stays untouched.
	sales, residual, err := Czechia().Calculate([]Activity{
		buy("AAPL", day(1), 3, 100, 20),
		sell("AAPL", day(2), 5, 150, 21),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("expected zero sale records, got %v", sales)
	}
	queue := residual["AAPL"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(3)) {
		t.Errorf("the skipped sale must not mutate the queue: %+v", queue)
	}
}

func TestCalculator_ZeroDeltaIsLoss(t *testing.T) {
	sales, _, err := Czechia().Calculate([]Activity{
		buy("AAPL", day(1), 1, 100, 20),
		sell("AAPL", day(2), 1, 100, 20),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	sale := sales[0]
	if !sale.Profit.IsZero() {
		t.Errorf("zero delta must not be a profit, got %s", sale.Profit.Decimal())
	}
	if !sale.Loss.IsZero() {
		t.Errorf("zero delta stores a zero loss, got %s", sale.Loss.Decimal())
	}
	if !sale.ProfitInCurrency.IsZero() {
		t.Errorf("zero delta in currency must not be a profit, got %s", sale.ProfitInCurrency.Decimal())
	}
}

func TestCalculator_LossKeepsNegativeDelta(t *testing.T) {
	sales, _, err := Czechia().Calculate([]Activity{
		buy("AAPL", day(1), 2, 100, 20),
		sell("AAPL", day(2), 2, 80, 20),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	sale := sales[0]
	if !sale.Loss.Equal(CZK(-800)) {
		t.Errorf("loss = %s, want -800", sale.Loss.Decimal())
	}
	if !sale.LossInCurrency.Equal(USD(-40)) {
		t.Errorf("loss in currency = %s, want -40", sale.LossInCurrency.Decimal())
	}
	if !sale.Profit.IsZero() || !sale.ProfitInCurrency.IsZero() {
		t.Error("profit fields should be zero on a losing sale")
	}
}

func TestCalculator_SpinOffReceiptHasZeroBasis(t *testing.T) {
	sales, _, err := Czechia().Calculate([]Activity{
		{Symbol: "SPUN", Type: SSO, TradeDate: day(1), Quantity: Q(10), Price: USD(50), Rate: R(20)},
		sell("SPUN", day(2), 10, 5, 20),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	sale := sales[0]
	// The SSO price and rate are forced to zero: all proceeds are profit.
	if !sale.PurchasePrice.IsZero() || !sale.PurchasePriceInCurrency.IsZero() {
		t.Errorf("spin-off receipt should have zero basis, got %s / %s",
			sale.PurchasePrice.Decimal(), sale.PurchasePriceInCurrency.Decimal())
	}
	if !sale.Profit.Equal(CZK(1000)) {
		t.Errorf("profit = %s, want 1000", sale.Profit.Decimal())
	}
}

func TestCalculator_SpinOffResolutionRescalesQueue(t *testing.T) {
	// Surrender 10 @ $100, resolve with 20 @ $50: double quantity, half price.
	sales, residual, err := Czechia().Calculate([]Activity{
		buy("ACME", day(1), 10, 100, 20),
		{Symbol: "ACME.OLD", Type: SSP, TradeDate: day(2), Quantity: Q(-10), Price: USD(100), Rate: R(20)},
		{Symbol: "ACME", Type: SSP, TradeDate: day(3), Quantity: Q(20), Price: USD(50), Rate: R(20)},
		sell("ACME", day(4), 20, 60, 20),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected one sale record, got %d", len(sales))
	}
	if !sales[0].PurchaseItemPrice.Equal(USD(50)) {
		t.Errorf("rescaled purchase price = %s, want $50", sales[0].PurchaseItemPrice.Decimal())
	}
	if len(residual) != 0 {
		t.Errorf("expected empty residual, got %v", residual)
	}
}

func TestCalculator_MASUsesSameMechanism(t *testing.T) {
	_, residual, err := Czechia().Calculate([]Activity{
		buy("OLDCO", day(1), 10, 100, 20),
		{Symbol: "OLDCO", Type: MAS, TradeDate: day(2), Quantity: Q(-10), Price: USD(100), Rate: R(20)},
		{Symbol: "OLDCO", Type: MAS, TradeDate: day(3), Quantity: Q(5), Price: USD(250), Rate: R(20)},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	queue := residual["OLDCO"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(5)) || !queue[0].Price.Equal(USD(250)) {
		t.Errorf("residual after MAS = %+v, want one lot of 5 @ $250", queue)
	}
}

func TestCalculator_ResolutionWithoutSurrenderIsSkipped(t *testing.T) {
	_, residual, err := Czechia().Calculate([]Activity{
		buy("ACME", day(1), 10, 100, 20),
		{Symbol: "ACME", Type: SSP, TradeDate: day(2), Quantity: Q(20), Price: USD(50), Rate: R(20)},
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	queue := residual["ACME"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(10)) || !queue[0].Price.Equal(USD(100)) {
		t.Errorf("orphan resolution must not mutate the queue: %+v", queue)
	}
}

func TestCalculator_DividendsDoNotAffectLots(t *testing.T) {
	// Dividend and withholding activities pass through the calculator:
	// recognized, but neither selling nor buying anything.
	activities := []Activity{buy("AAPL", day(1), 10, 100, 20)}
	for _, typ := range append(append([]ActivityType{}, ReceivedDividendTypes...), TaxDividendTypes...) {
		activities = append(activities, Activity{
			Symbol: "AAPL", Type: typ, TradeDate: day(2),
			Quantity: Q(0), Amount: USD(12), Rate: R(20),
		})
	}

	sales, residual, err := Czechia().Calculate(activities)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(sales) != 0 {
		t.Errorf("dividends produced sale records: %v", sales)
	}
	queue := residual["AAPL"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(10)) || !queue[0].Price.Equal(USD(100)) {
		t.Errorf("dividends mutated the lot queue: %+v", queue)
	}
}

func TestCalculator_ZeroQuantitySell(t *testing.T) {
	// A zero-quantity sell against an open queue yields one zero-quantity
	// record and leaves the queue untouched.
	sales, residual, err := Czechia().Calculate([]Activity{
		buy("AAPL", day(1), 10, 100, 20),
		sell("AAPL", day(2), 0, 150, 21),
	})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if len(sales) != 1 || !sales[0].Quantity.IsZero() {
		t.Fatalf("expected one zero-quantity record, got %v", sales)
	}
	if !sales[0].Profit.IsZero() || !sales[0].Loss.IsZero() {
		t.Errorf("zero-quantity record carries a profit or loss: %+v", sales[0])
	}
	queue := residual["AAPL"]
	if len(queue) != 1 || !queue[0].Quantity.Equal(Q(10)) {
		t.Errorf("zero-quantity sell mutated the queue: %+v", queue)
	}
}

func TestCalculator_GenericSellNotImplemented(t *testing.T) {
	_, _, err := NewCalculator(nil).Calculate([]Activity{
		buy("AAPL", day(1), 10, 100, 20),
		sell("AAPL", day(2), 4, 150, 21),
	})
	if !errors.Is(err, ErrSaleNotImplemented) {
		t.Errorf("generic calculator selling should fail with ErrSaleNotImplemented, got %v", err)
	}
}

func TestCalculator_ProfitLossExclusive(t *testing.T) {
	cases := []struct {
		name      string
		sellPrice float64
	}{
		{"profit", 150},
		{"even", 100},
		{"loss", 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sales, _, err := Czechia().Calculate([]Activity{
				buy("AAPL", day(1), 1, 100, 20),
				sell("AAPL", day(2), 1, tc.sellPrice, 20),
			})
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			sale := sales[0]
			if sale.Profit.IsPositive() && sale.Loss.IsNegative() {
				t.Error("profit and loss are both set")
			}
			delta := sale.SellPrice.Sub(sale.PurchasePrice)
			if !sale.Profit.Add(sale.Loss).Equal(delta) {
				t.Errorf("profit+loss = %s, want delta %s", sale.Profit.Add(sale.Loss).Decimal(), delta.Decimal())
			}
		})
	}
}
