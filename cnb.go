package kapgain

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Czech National Bank exchange rate endpoints. The text endpoint serves the
// historical USD fixing as a pipe-delimited listing; the JSON API serves the
// full daily fixing for a single date.
const (
	cnbTextURL = "https://www.cnb.cz/cs/financni-trhy/devizovy-trh/kurzy-devizoveho-trhu/kurzy-devizoveho-trhu/vybrane.txt"
	cnbJSONURL = "https://api.cnb.cz/cnbapi/exrates/daily"

	// The text listing carries two header rows before the data.
	cnbHeaderRows = 2
	// Ranges are fetched in windows of this many months.
	cnbWindowMonths = 3
)

// CNBClient fetches USD/CZK rates from the Czech National Bank. HTTP
// responses go through the daily-expiring disk cache, so repeated runs over
// the same statements hit the network once a day at most.
type CNBClient struct {
	client   *http.Client
	currency string
}

// NewCNBClient returns a client for the bank's USD fixing.
func NewCNBClient() *CNBClient {
	return &CNBClient{client: daily(), currency: "USD"}
}

// Rates fetches the published rates covering [first, last]. It starts one
// month before first to guarantee a published rate exists at or before the
// first trade date, and walks the range in windows. Any failure aborts: a
// run must not compute on partial rate data.
func (c *CNBClient) Rates(first, last Date) (*RateTable, error) {
	first = first.AddMonth(-1)

	table := new(RateTable)
	for !first.After(last) {
		windowEnd := first.AddMonth(cnbWindowMonths)
		if err := c.queryWindow(table, first, windowEnd); err != nil {
			return nil, fmt.Errorf("unable to get exchange rates from CNB: %w", err)
		}
		first = windowEnd.Add(1)
	}
	return table, nil
}

// queryWindow fetches one window of the text listing into the table.
func (c *CNBClient) queryWindow(table *RateTable, first, last Date) error {
	ratesLog.Debugf("obtaining exchange rates for date range: [%s] - [%s]", first, last)

	params := url.Values{}
	params.Set("mena", c.currency)
	params.Set("format", "txt")
	params.Set("od", first.Czech())
	params.Set("do", last.Czech())

	text, err := twget(c.client, cnbTextURL+"?"+params.Encode())
	if err != nil {
		return err
	}
	return parseCNBListing(table, text)
}

// parseCNBListing parses the pipe-delimited text listing. Lines look like
// "02.01.2023|22,048" with the Czech decimal comma.
func parseCNBListing(table *RateTable, text string) error {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if i < cnbHeaderRows || line == "" {
			continue
		}
		day, rate, err := parseCNBLine(line)
		if err != nil {
			return err
		}
		table.Append(day, rate)
	}
	return nil
}

func parseCNBLine(line string) (Date, Rate, error) {
	fields := strings.Split(line, "|")
	if len(fields) != 2 {
		return Date{}, Rate{}, fmt.Errorf("malformed rate line %q", line)
	}
	day, err := ParseDate(fields[0])
	if err != nil {
		return Date{}, Rate{}, fmt.Errorf("malformed rate date in %q: %w", line, err)
	}
	rate, err := ParseRate(strings.Replace(strings.TrimSpace(fields[1]), ",", ".", 1))
	if err != nil {
		return Date{}, Rate{}, fmt.Errorf("malformed rate value in %q: %w", line, err)
	}
	return day, rate, nil
}

// DailyRate fetches the bank's full fixing for a single date from the JSON
// API and extracts the client's currency.
func (c *CNBClient) DailyRate(day Date) (Rate, error) {
	addr := fmt.Sprintf("%s?date=%s&lang=EN", cnbJSONURL, day)

	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return Rate{}, fmt.Errorf("unable to get daily fixing from CNB: %w", err)
	}

	jval, err := jsonpath.Get("$.rates[*]", jobj)
	if err != nil {
		return Rate{}, fmt.Errorf("unexpected CNB daily fixing payload: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return Rate{}, fmt.Errorf("unexpected CNB daily fixing payload: not a list")
	}

	for _, entry := range jlist {
		jentry, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if code, _ := jentry["currencyCode"].(string); code != c.currency {
			continue
		}
		value, ok := jentry["rate"].(float64)
		if !ok {
			return Rate{}, fmt.Errorf("CNB rate for %s is not a number", c.currency)
		}
		// The fixing is quoted per "amount" units of the currency.
		amount, ok := jentry["amount"].(float64)
		if !ok || amount == 0 {
			amount = 1
		}
		return R(value / amount), nil
	}
	return Rate{}, fmt.Errorf("no %s rate in CNB fixing for %s", c.currency, day)
}
