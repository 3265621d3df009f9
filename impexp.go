package kapgain

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// this file contains the csv statement import format: the same ten columns
// the statement export writes, so an exported statements.csv round-trips.

// statement csv column indexes.
const (
	colTradeDate = iota
	colSettleDate
	colCurrency
	colActivityType
	colCompany
	colDescription
	colSymbol
	colQuantity
	colPrice
	colAmount
	statementColumns
)

// ImportStatements reads activities from csv statement data. The first row
// is a header and is skipped. Rows keep their file order; chronological
// ordering is the responsibility of the caller (see Parser).
func ImportStatements(r io.Reader) ([]Activity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = statementColumns

	var activities []Activity
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse statement csv: %w", err)
		}
		if first {
			first = false
			continue
		}
		activity, err := parseStatementRow(record)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

func parseStatementRow(record []string) (Activity, error) {
	tradeDate, err := ParseDate(record[colTradeDate])
	if err != nil {
		return Activity{}, fmt.Errorf("cannot parse statement trade date: %w", err)
	}
	// The settle date is informational and may be blank.
	var settleDate Date
	if strings.TrimSpace(record[colSettleDate]) != "" {
		if settleDate, err = ParseDate(record[colSettleDate]); err != nil {
			return Activity{}, fmt.Errorf("cannot parse statement settle date: %w", err)
		}
	}
	currency := strings.TrimSpace(record[colCurrency])
	quantity, err := ParseQuantity(record[colQuantity])
	if err != nil {
		return Activity{}, fmt.Errorf("cannot parse statement quantity: %w", err)
	}
	price, err := ParseMoney(record[colPrice], currency)
	if err != nil {
		return Activity{}, fmt.Errorf("cannot parse statement price: %w", err)
	}
	amount, err := ParseMoney(record[colAmount], currency)
	if err != nil {
		return Activity{}, fmt.Errorf("cannot parse statement amount: %w", err)
	}

	return Activity{
		Symbol:      strings.TrimSpace(record[colSymbol]),
		Description: record[colDescription],
		Company:     record[colCompany],
		Type:        ActivityType(strings.TrimSpace(record[colActivityType])),
		TradeDate:   tradeDate,
		SettleDate:  settleDate,
		Quantity:    quantity,
		Price:       price,
		Amount:      amount,
	}, nil
}

// A Parser turns broker statement files into a chronological activity
// stream. Implementations own ordering: the calculator relies on per-symbol
// chronological order and does not sort.
type Parser interface {
	Parse() ([]Activity, error)
}

// NewParser returns the named statement parser for an input directory.
// "csv" is the built-in format; the registry is the extension point for
// further broker formats.
func NewParser(name, inputDir string) (Parser, error) {
	switch name {
	case "csv":
		return csvParser{dir: inputDir}, nil
	default:
		return nil, fmt.Errorf("unknown parser %q", name)
	}
}

// csvParser reads every *.csv file of a directory as statement csv.
type csvParser struct {
	dir string
}

func (p csvParser) Parse() ([]Activity, error) {
	files, err := filepath.Glob(filepath.Join(p.dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var activities []Activity
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("cannot open statement file %q: %w", file, err)
		}
		parsed, err := ImportStatements(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot parse statement file %q: %w", file, err)
		}
		activities = append(activities, parsed...)
	}

	// Stable sort keeps same-day activities in statement order.
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].TradeDate.Before(activities[j].TradeDate)
	})
	return activities, nil
}
