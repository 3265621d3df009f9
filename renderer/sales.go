// Package renderer renders calculation results as markdown for terminal
// display.
package renderer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/zitko/kapgain"
)

// SalesMarkdown renders the realized sales as a markdown report in the
// reporting currency.
func SalesMarkdown(sales []kapgain.SaleRecord) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Realized Sales (CZK)\n\n")
	if len(sales) == 0 {
		fmt.Fprint(&b, "No realized sales.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Purchased | Sold | Purchase Price | Sell Price | Profit | Loss |")
	fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|---:|")

	profit := kapgain.CZK(0)
	loss := kapgain.CZK(0)
	for _, sale := range sales {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			sale.Symbol,
			sale.Quantity,
			sale.PurchaseDate.Czech(),
			sale.SellDate.Czech(),
			sale.PurchasePrice.Fixed(),
			sale.SellPrice.Fixed(),
			sale.Profit.Fixed(),
			sale.Loss.Fixed(),
		)
		profit = profit.Add(sale.Profit)
		loss = loss.Add(sale.Loss)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** | **%s** |\n", profit.Fixed(), loss.Fixed())

	fmt.Fprintf(&b, "\nNet profit/loss: %s CZK\n", profit.Add(loss).Fixed())
	return b.String()
}

// ResidualMarkdown renders the open lots left after the calculation, the
// quantities carried forward into the next tax year.
func ResidualMarkdown(residual map[string][]kapgain.Lot) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Open Lots\n\n")
	if len(residual) == 0 {
		fmt.Fprint(&b, "No open lots.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Unit Price | Purchased |")
	fmt.Fprintln(&b, "|:---|---:|---:|:---|")
	for _, symbol := range slices.Sorted(maps.Keys(residual)) {
		for _, lot := range residual[symbol] {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				symbol, lot.Quantity, lot.Price.Fixed(), lot.Date.Czech())
		}
	}
	return b.String()
}

// RatesMarkdown renders a rate table.
func RatesMarkdown(table *kapgain.RateTable) string {
	var b strings.Builder

	fmt.Fprint(&b, "# CNB Exchange Rates (USD/CZK)\n\n")
	fmt.Fprintln(&b, "| Date | Rate |")
	fmt.Fprintln(&b, "|:---|---:|")
	for day, rate := range table.Values() {
		fmt.Fprintf(&b, "| %s | %s |\n", day.Czech(), rate)
	}
	return b.String()
}
