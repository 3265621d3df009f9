package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/zitko/kapgain"
	"github.com/zitko/kapgain/renderer"
)

// ratesCmd fetches and displays CNB exchange rates.
type ratesCmd struct {
	start   string
	end     string
	day     string
	save    string
	verbose bool
}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "fetch and display CNB USD/CZK exchange rates" }
func (*ratesCmd) Usage() string {
	return `kpg rates [-s <date> -d <date>] [-day <date>] [-save <file>]

  Fetches the CNB USD/CZK fixing. With -s/-d it lists the published rates of
  the range (and can save them as an offline rate table with -save). With
  -day it queries the JSON API for a single date.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the range.")
	f.StringVar(&c.end, "d", kapgain.Today().String(), "End date of the range.")
	f.StringVar(&c.day, "day", "", "Single date to query via the JSON API.")
	f.StringVar(&c.save, "save", "", "Save the fetched range as an offline rate table csv.")
	f.BoolVar(&c.verbose, "v", false, "Enable verbose output.")
}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := kapgain.InitLogging(c.verbose); err != nil {
		return fail(err)
	}
	client := kapgain.NewCNBClient()

	if c.day != "" {
		day, err := kapgain.ParseDate(c.day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		rate, err := client.DailyRate(day)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s: %s\n", day.Czech(), rate)
		return subcommands.ExitSuccess
	}

	if c.start == "" {
		fmt.Fprintln(os.Stderr, "a start date is required (-s), or use -day")
		return subcommands.ExitUsageError
	}
	start, err := kapgain.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := kapgain.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	table, err := client.Rates(start, end)
	if err != nil {
		return fail(err)
	}

	if c.save != "" {
		f, err := os.Create(c.save)
		if err != nil {
			return fail(err)
		}
		defer f.Close()
		if err := kapgain.EncodeRateTable(f, table); err != nil {
			return fail(err)
		}
		fmt.Printf("Saved %d rates to %s\n", table.Len(), c.save)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RatesMarkdown(table))
	return subcommands.ExitSuccess
}
