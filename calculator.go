package kapgain

import (
	"errors"
	"fmt"
)

// ErrSaleNotImplemented is returned when a sell activity reaches a
// calculator with no jurisdiction-specific sale computation. Unlike the
// data-quality warnings this is fatal: a run that cannot price its sales has
// no meaningful output.
var ErrSaleNotImplemented = errors.New("sale calculation not implemented for this jurisdiction")

// A SaleComputer prices the sales of one jurisdiction. Given the matched
// FIFO slices and the triggering sell activity it produces one record per
// slice, applying the jurisdiction's reporting rules.
type SaleComputer interface {
	ComputeSale(sell Activity, consumed []Lot) []SaleRecord
	ReportingCurrency() string
}

// Calculator folds a chronological stream of activities into realized sale
// records and a residual lot queue per symbol. The caller guarantees
// chronological order per symbol; the calculator performs no sorting.
type Calculator struct {
	ledger   *Ledger
	computer SaleComputer // nil for the generic, jurisdiction-less calculator
	sales    []SaleRecord
}

// NewCalculator returns a calculator whose sell handling is delegated to the
// given computer. A nil computer leaves sells unimplemented.
func NewCalculator(computer SaleComputer) *Calculator {
	return &Calculator{ledger: NewLedger(), computer: computer}
}

// Czechia returns a calculator applying the Czech (MFCR) capital gains
// rules, reporting in CZK.
func Czechia() *Calculator {
	return NewCalculator(czechComputer{})
}

// Calculate processes every activity in input order and returns the realized
// sales plus the residual open lots per symbol. Activities that do not
// affect the lots (dividends) pass through untouched.
func (c *Calculator) Calculate(activities []Activity) ([]SaleRecord, map[string][]Lot, error) {
	for _, activity := range activities {
		var err error
		switch activity.Type {
		case Buy:
			c.recordBuy(activity)
		case SSO:
			c.recordSpinOffReceipt(activity)
		case Sell:
			err = c.recordSell(activity)
		case SSP, MAS:
			c.adjustForCorporateAction(activity)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	return c.sales, c.ledger.Residual(), nil
}

func (c *Calculator) recordBuy(activity Activity) {
	quantity := activity.Quantity.Abs()
	calcLog.Debugf("[BUY] [%s] td:[%s] qt:[%s] pr:[%s] ex:[%s]",
		activity.Symbol, activity.TradeDate, quantity, activity.Price, activity.Rate)
	c.ledger.RecordPurchase(activity.Symbol, quantity, activity.Price, activity.Rate, activity.TradeDate)
}

// recordSpinOffReceipt records spun-off shares as a zero-basis lot. The
// basis is established later when the matching SSP resolution rescales the
// queue.
func (c *Calculator) recordSpinOffReceipt(activity Activity) {
	quantity := activity.Quantity.Abs()
	calcLog.Debugf("[SSO] [%s] td:[%s] qt:[%s] pr:[%s] ex:[%s]",
		activity.Symbol, activity.TradeDate, quantity, activity.Price, activity.Rate)
	c.ledger.RecordPurchase(activity.Symbol, quantity, M(0, activity.Price.Currency()), R(0), activity.TradeDate)
}

func (c *Calculator) recordSell(activity Activity) error {
	if c.computer == nil {
		return fmt.Errorf("cannot compute sale of %q on %s: %w", activity.Symbol, activity.TradeDate, ErrSaleNotImplemented)
	}

	quantity := activity.Quantity.Abs()
	calcLog.Debugf("[SELL] [%s] td:[%s] qt:[%s] pr:[%s] ex:[%s]",
		activity.Symbol, activity.TradeDate, quantity, activity.Price, activity.Rate)

	consumed, ok := c.ledger.MatchSale(activity.Symbol, quantity)
	if !ok {
		// Historical statements are sometimes incomplete. Report and skip
		// the sale rather than abort on a data-quality issue.
		calcLog.Warnf("No purchase information found for: [%s].", activity.Symbol)
		return nil
	}

	c.sales = append(c.sales, c.computer.ComputeSale(activity, consumed)...)
	c.ledger.CommitSale(activity.Symbol, quantity)
	return nil
}

func (c *Calculator) adjustForCorporateAction(activity Activity) {
	symbol := activity.NormalizedSymbol()
	calcLog.Debugf("[%s] [%s] td:[%s] qt:[%s] pr:[%s] ex:[%s]",
		activity.Type, activity.Symbol, activity.TradeDate, activity.Quantity, activity.Price, activity.Rate)

	if activity.Quantity.IsNegative() {
		c.ledger.Surrender(symbol, activity.Quantity.Abs(), activity.Price)
		return
	}
	if !c.ledger.Resolve(symbol, activity.Quantity.Abs(), activity.Price) {
		calcLog.Warnf("No surrender information found for: [%s].", symbol)
	}
}

// czechComputer prices sales under the Czech rules: both sides of every
// matched slice are converted to CZK with their own historical rate.
type czechComputer struct{}

func (czechComputer) ReportingCurrency() string { return "CZK" }

func (czechComputer) ComputeSale(sell Activity, consumed []Lot) []SaleRecord {
	records := make([]SaleRecord, 0, len(consumed))
	for _, slice := range consumed {
		records = append(records, buildSaleRecord(slice, sell, "CZK"))
	}
	return records
}
