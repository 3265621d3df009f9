package kapgain

import (
	"testing"
	"time"
)

func TestParseCNBListing(t *testing.T) {
	// Two header rows, pipe-delimited data with the Czech decimal comma.
	text := "Měna: USD|Množství: 1\nDatum|Kurz\n02.01.2023|22,530\n03.01.2023|22,417\n\n"

	table := new(RateTable)
	if err := parseCNBListing(table, text); err != nil {
		t.Fatalf("parseCNBListing() error = %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	rate, _, err := table.Lookup(NewDate(2023, time.January, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(R(22.53)) {
		t.Errorf("rate = %s, want 22.53", rate)
	}
}

func TestParseCNBListing_Malformed(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"missing column", "h1\nh2\n02.01.2023\n"},
		{"bad date", "h1\nh2\nnot-a-date|22,530\n"},
		{"bad rate", "h1\nh2\n02.01.2023|abc\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := parseCNBListing(new(RateTable), tc.text); err == nil {
				t.Error("expected an error, rates must not be guessed")
			}
		})
	}
}

func TestParseCNBLine(t *testing.T) {
	d, rate, err := parseCNBLine("31.12.2024|24,105")
	if err != nil {
		t.Fatalf("parseCNBLine() error = %v", err)
	}
	if d != NewDate(2024, time.December, 31) {
		t.Errorf("date = %s, want 2024-12-31", d)
	}
	if !rate.Equal(R(24.105)) {
		t.Errorf("rate = %s, want 24.105", rate)
	}
}
