package kapgain

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// RateTable stores a chronological series of published exchange rates, one
// per publication date. Dates are unique and the series is always sorted.
type RateTable struct {
	days  []Date
	rates []Rate
}

// Len returns the number of published rates in the table.
func (t *RateTable) Len() int { return len(t.days) }

// chronological is a private implementation to make the table chronologically sorted.
type chronological struct{ *RateTable }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.rates[i], s.rates[j] = s.rates[j], s.rates[i]
}

func (t *RateTable) sort() { sort.Sort(chronological{t}) }

// Append adds a published rate to the table. An existing rate at that date
// is overwritten.
func (t *RateTable) Append(on Date, rate Rate) *RateTable {
	if i := slices.Index(t.days, on); i >= 0 {
		t.rates[i] = rate
		return t
	}
	t.days, t.rates = append(t.days, on), append(t.rates, rate)
	t.sort()
	return t
}

// Lookup returns the rate for the given day: the exact publication if one
// exists, otherwise the nearest published rate by absolute day distance
// (the earlier date wins a tie). The second result is the publication date
// of the rate actually returned.
func (t *RateTable) Lookup(day Date) (Rate, Date, error) {
	if len(t.days) == 0 {
		return Rate{}, Date{}, fmt.Errorf("no exchange rates available for %s", day)
	}
	best := 0
	bestDistance := DaysBetween(t.days[0], day)
	for i, published := range t.days {
		if published == day {
			return t.rates[i], published, nil
		}
		if distance := DaysBetween(published, day); distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return t.rates[best], t.days[best], nil
}

// Values iterates over all date/rate pairs in chronological order.
func (t *RateTable) Values() iter.Seq2[Date, Rate] {
	return func(yield func(Date, Rate) bool) {
		for i, day := range t.days {
			if !yield(day, t.rates[i]) {
				return
			}
		}
	}
}

// Populate stamps every activity with its resolved exchange rate: the rate
// published on the trade date when available, else the nearest published
// rate. Any gap in the table is fatal for the run; computing tax figures on
// partial rate data is worse than not computing them.
func (t *RateTable) Populate(activities []Activity) ([]Activity, error) {
	populated := make([]Activity, len(activities))
	for i, activity := range activities {
		rate, published, err := t.Lookup(activity.TradeDate)
		if err != nil {
			return nil, err
		}
		if published != activity.TradeDate {
			ratesLog.Debugf("no rate published on [%s], using nearest [%s]", activity.TradeDate, published)
		}
		activity.Rate = rate
		activity.RateDate = published
		populated[i] = activity
	}
	return populated, nil
}

// RateSource provides the exchange rates covering a date range. The CNB
// client and the offline CSV table both implement it.
type RateSource interface {
	Rates(first, last Date) (*RateTable, error)
}
