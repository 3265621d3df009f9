// Package kapgain computes Czech capital-gains tax figures from brokerage
// trade statements.
//
// Sell activities are matched against prior purchases using FIFO lot
// accounting, stock splits and spin-offs rescale the open lots in place, and
// every realized sale is reported in both the trade currency and CZK using
// the Czech National Bank historical exchange rates.
package kapgain
