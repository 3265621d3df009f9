package kapgain

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Rate tables can be kept on disk as a two-column csv (date, rate) so runs
// work without network access. The dates use the ISO form.

// DecodeRateTable reads a rate table from csv data.
func DecodeRateTable(r io.Reader) (*RateTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	table := new(RateTable)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read rate table: %w", err)
		}
		day, err := ParseDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("could not read rate table: %w", err)
		}
		rate, err := ParseRate(record[1])
		if err != nil {
			return nil, fmt.Errorf("could not read rate table: %w", err)
		}
		table.Append(day, rate)
	}
	return table, nil
}

// EncodeRateTable writes a rate table as csv data.
func EncodeRateTable(w io.Writer, table *RateTable) error {
	writer := csv.NewWriter(w)
	for day, rate := range table.Values() {
		if err := writer.Write([]string{day.String(), rate.String()}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FileRateSource serves rates from a csv file on disk, ignoring the
// requested range (the file is expected to cover it; any gap surfaces as a
// lookup failure later and aborts the run).
type FileRateSource struct {
	Path string
}

// Rates implements RateSource.
func (s FileRateSource) Rates(first, last Date) (*RateTable, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open rate table %q: %w", s.Path, err)
	}
	defer f.Close()
	return DecodeRateTable(f)
}
