package kapgain

import (
	"testing"
	"time"
)

func day(d int) Date { return NewDate(2025, time.January, d) }

func TestLots_TakeFIFOOrder(t *testing.T) {
	queue := lots{
		{Price: USD(10), Rate: R(20), Quantity: Q(5), Date: day(1)},
		{Price: USD(12), Rate: R(21), Quantity: Q(5), Date: day(2)},
		{Price: USD(14), Rate: R(22), Quantity: Q(5), Date: day(3)},
	}

	consumed, ok := queue.take(Q(12))
	if !ok {
		t.Fatal("take(12) failed on a queue of 15")
	}
	if len(consumed) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(consumed))
	}

	// Oldest first, and quantities sum to exactly 12.
	total := Q(0)
	for _, slice := range consumed {
		total = total.Add(slice.Quantity)
	}
	if !total.Equal(Q(12)) {
		t.Errorf("consumed quantities sum to %s, want 12", total)
	}
	if !consumed[0].Date.Before(consumed[1].Date) || !consumed[1].Date.Before(consumed[2].Date) {
		t.Errorf("slices are not in FIFO order: %v", consumed)
	}
	if !consumed[2].Quantity.Equal(Q(2)) {
		t.Errorf("last slice quantity = %s, want 2", consumed[2].Quantity)
	}
}

func TestLots_TakeDoesNotMutate(t *testing.T) {
	queue := lots{
		{Price: USD(10), Rate: R(20), Quantity: Q(5), Date: day(1)},
		{Price: USD(12), Rate: R(21), Quantity: Q(5), Date: day(2)},
	}

	if _, ok := queue.take(Q(7)); !ok {
		t.Fatal("take(7) failed on a queue of 10")
	}

	if !queue.open().Equal(Q(10)) {
		t.Errorf("take mutated the queue: open = %s, want 10", queue.open())
	}
	if !queue[0].Quantity.Equal(Q(5)) || !queue[1].Quantity.Equal(Q(5)) {
		t.Errorf("take mutated lot quantities: %v", queue)
	}
}

func TestLots_ConsumeSplitsLot(t *testing.T) {
	queue := lots{
		{Price: USD(10), Rate: R(20), Quantity: Q(5), Date: day(1)},
		{Price: USD(12), Rate: R(21), Quantity: Q(5), Date: day(2)},
	}

	remaining := queue.consume(Q(7))
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining lot, got %d", len(remaining))
	}
	// The split lot keeps its original price, rate and date.
	rest := remaining[0]
	if !rest.Quantity.Equal(Q(3)) {
		t.Errorf("remaining quantity = %s, want 3", rest.Quantity)
	}
	if !rest.Price.Equal(USD(12)) || !rest.Rate.Equal(R(21)) || rest.Date != day(2) {
		t.Errorf("remaining lot lost its identity: %+v", rest)
	}
}

func TestLots_ConsumeExactExhaustion(t *testing.T) {
	queue := lots{
		{Price: USD(10), Rate: R(20), Quantity: Q(5), Date: day(1)},
		{Price: USD(12), Rate: R(21), Quantity: Q(5), Date: day(2)},
	}

	remaining := queue.consume(Q(10))
	if len(remaining) != 0 {
		t.Errorf("exact exhaustion should empty the queue, got %v", remaining)
	}
}

func TestLots_TakeInsufficient(t *testing.T) {
	queue := lots{
		{Price: USD(10), Rate: R(20), Quantity: Q(5), Date: day(1)},
	}

	consumed, ok := queue.take(Q(6))
	if ok {
		t.Errorf("take(6) on a queue of 5 should fail, got %v", consumed)
	}
	if consumed != nil {
		t.Errorf("failed take should return no slices, got %v", consumed)
	}
}

func TestLots_Rescale(t *testing.T) {
	queue := lots{
		{Price: USD(100), Rate: R(20), Quantity: Q(10), Date: day(1)},
		{Price: USD(200), Rate: R(21), Quantity: Q(4), Date: day(2)},
	}

	// 2-for-1 split at half price.
	queue.rescale(Q(2), Q(0.5))

	if !queue[0].Quantity.Equal(Q(20)) || !queue[0].Price.Equal(USD(50)) {
		t.Errorf("lot 0 after rescale: qty=%s price=%s, want 20 and $50", queue[0].Quantity, queue[0].Price.Decimal())
	}
	if !queue[1].Quantity.Equal(Q(8)) || !queue[1].Price.Equal(USD(100)) {
		t.Errorf("lot 1 after rescale: qty=%s price=%s, want 8 and $100", queue[1].Quantity, queue[1].Price.Decimal())
	}
	// Rates and dates are untouched.
	if !queue[0].Rate.Equal(R(20)) || queue[1].Date != day(2) {
		t.Errorf("rescale touched rate or date: %v", queue)
	}
}
