package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/zitko/kapgain"
)

// statementsCmd parses statements and exports the normalized csv without
// touching rates or sales.
type statementsCmd struct {
	inputDir  string
	outputDir string
	parsers   parserList
	verbose   bool
}

func (*statementsCmd) Name() string     { return "statements" }
func (*statementsCmd) Synopsis() string { return "parse statement files and export statements.csv" }
func (*statementsCmd) Usage() string {
	return `kpg statements -i <input_dir> -o <output_dir> [-p <parser>]...

  Parses the statement files and exports the normalized statements.csv,
  without exchange rates or sales calculation. Useful to inspect what the
  parsers found.
`
}

func (c *statementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputDir, "i", "", "Directory containing statement files.")
	f.StringVar(&c.outputDir, "o", "", "Output directory for the csv files.")
	f.Var(&c.parsers, "p", "Parser to use for statement processing. Repeat for more than one. Default: csv.")
	f.BoolVar(&c.verbose, "v", false, "Enable verbose output.")
}

func (c *statementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	if c.inputDir == "" {
		c.inputDir = cfg.InputDir
	}
	if c.outputDir == "" {
		c.outputDir = cfg.OutputDir
	}
	if len(c.parsers) == 0 {
		c.parsers = cfg.Parsers
	}
	if len(c.parsers) == 0 {
		c.parsers = parserList{"csv"}
	}

	if err := kapgain.InitLogging(c.verbose || cfg.Verbose); err != nil {
		return fail(err)
	}
	if c.outputDir == "" {
		fmt.Fprintln(os.Stderr, "an output directory is required (-o)")
		return subcommands.ExitUsageError
	}

	process := kapgain.NewProcess(c.inputDir, c.outputDir, c.parsers, nil)
	if err := process.RunStatementsOnly(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
