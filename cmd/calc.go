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

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	inputDir   string
	outputDir  string
	parsers    parserList
	useCNB     bool
	ratesFile  string
	inCurrency bool
	verbose    bool
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "calculate realized sales and generate the csv reports" }
func (*calcCmd) Usage() string {
	return `kpg calc -i <input_dir> -o <output_dir> [-p <parser>]... [-b | -r <rates.csv>] [-c] [-v]

  Parses the statement files, exports statements.csv, resolves CNB exchange
  rates, matches every sell against prior purchases using FIFO, and exports
  sales.csv for the MFCR filing.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputDir, "i", "", "Directory containing statement files.")
	f.StringVar(&c.outputDir, "o", "", "Output directory for the csv reports.")
	f.Var(&c.parsers, "p", "Parser to use for statement processing. Repeat for more than one. Default: csv.")
	f.BoolVar(&c.useCNB, "b", false, "Use the CNB online service as exchange rate source.")
	f.StringVar(&c.ratesFile, "r", "", "Offline exchange rate csv file (date,rate per line).")
	f.BoolVar(&c.inCurrency, "c", false, "Report profit/loss in the original trade currency.")
	f.BoolVar(&c.verbose, "v", false, "Enable verbose output.")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	c.applyConfig(cfg)

	if err := kapgain.InitLogging(c.verbose); err != nil {
		return fail(err)
	}
	if c.outputDir == "" {
		fmt.Fprintln(os.Stderr, "an output directory is required (-o)")
		return subcommands.ExitUsageError
	}
	if len(c.parsers) == 0 {
		c.parsers = parserList{"csv"}
	}

	var source kapgain.RateSource
	if c.useCNB || c.ratesFile == "" {
		source = kapgain.NewCNBClient()
	} else {
		source = kapgain.FileRateSource{Path: c.ratesFile}
	}

	process := kapgain.NewProcess(c.inputDir, c.outputDir, c.parsers, source)
	process.InCurrency = c.inCurrency
	if err := process.Run(); err != nil {
		return fail(err)
	}

	printMarkdown(renderer.SalesMarkdown(process.Sales()))
	printMarkdown(renderer.ResidualMarkdown(process.Residual()))
	return subcommands.ExitSuccess
}

// applyConfig fills in flags the user did not set from the config file.
func (c *calcCmd) applyConfig(cfg kapgain.Config) {
	if c.inputDir == "" {
		c.inputDir = cfg.InputDir
	}
	if c.outputDir == "" {
		c.outputDir = cfg.OutputDir
	}
	if len(c.parsers) == 0 {
		c.parsers = cfg.Parsers
	}
	if c.ratesFile == "" {
		c.ratesFile = cfg.RatesFile
	}
	c.useCNB = c.useCNB || cfg.UseCNB
	c.inCurrency = c.inCurrency || cfg.InCurrency
	c.verbose = c.verbose || cfg.Verbose
}
