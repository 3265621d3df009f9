package kapgain

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// csv report writers for the MFCR filing. All monetary values are quantized
// half-up to 0.01 here, at the output boundary; the records themselves stay
// full precision.

// header turns field names into the csv header row ("trade_date" -> "Trade Date").
func header(fields []string) []string {
	row := make([]string, len(fields))
	for i, field := range fields {
		words := strings.Split(field, "_")
		for j, word := range words {
			if word != "" {
				words[j] = strings.ToUpper(word[:1]) + word[1:]
			}
		}
		row[i] = strings.Join(words, " ")
	}
	return row
}

func writeCSV(w io.Writer, fields []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header(fields)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportStatements writes the normalized statement activities.
func ExportStatements(w io.Writer, activities []Activity) error {
	fields := []string{"trade_date", "settle_date", "currency", "activity_type",
		"company", "symbol_description", "symbol", "quantity", "price", "amount"}

	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			a.TradeDate.Czech(),
			a.SettleDate.Czech(),
			a.Price.Currency(),
			string(a.Type),
			a.Company,
			a.Description,
			a.Symbol,
			a.Quantity.String(),
			a.Price.Decimal().String(),
			a.Amount.Decimal().String(),
		})
	}
	return writeCSV(w, fields, rows)
}

// ExportSalesCZK writes the realized sales with every amount converted to
// CZK, the form the MFCR filing wants.
func ExportSalesCZK(w io.Writer, sales []SaleRecord) error {
	fields := []string{"symbol", "quantity", "sell_item_price", "currency",
		"trade_date", "purchase_item_price", "purchase_date", "profit", "loss"}

	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		sellItem := sale.SellRate.Convert(sale.SellItemPrice, "CZK")
		purchaseItem := sale.PurchaseRate.Convert(sale.PurchaseItemPrice, "CZK")
		rows = append(rows, []string{
			sale.Symbol,
			sale.Quantity.String(),
			sellItem.Fixed(),
			"CZK",
			sale.SellDate.Czech(),
			purchaseItem.Fixed(),
			sale.PurchaseDate.Czech(),
			sale.Profit.Fixed(),
			sale.Loss.Fixed(),
		})
	}
	return writeCSV(w, fields, rows)
}

// ExportSalesInCurrency writes the realized sales in the original trade
// currency, for filers who report the conversion themselves.
func ExportSalesInCurrency(w io.Writer, sales []SaleRecord) error {
	fields := []string{"symbol", "quantity", "sell_item_price_in_currency", "currency",
		"trade_date", "purchase_item_price_in_currency", "purchase_date",
		"profit_in_currency", "loss_in_currency"}

	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, []string{
			sale.Symbol,
			sale.Quantity.String(),
			sale.SellItemPrice.Fixed(),
			sale.SellItemPrice.Currency(),
			sale.SellDate.Czech(),
			sale.PurchaseItemPrice.Fixed(),
			sale.PurchaseDate.Czech(),
			sale.ProfitInCurrency.Fixed(),
			sale.LossInCurrency.Fixed(),
		})
	}
	return writeCSV(w, fields, rows)
}

// exportFile is a small helper writing one report into a file, creating
// parent directories as needed.
func exportFile(path string, export func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer f.Close()
	if err := export(f); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
