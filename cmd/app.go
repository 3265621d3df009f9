// Package cmd implements the CLI application computing Czech capital gains
// from brokerage statements.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/zitko/kapgain"
)

// Register the subcommands.
// A main package calls Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&calcCmd{}, "reports")
	c.Register(&statementsCmd{}, "reports")
	c.Register(&ratesCmd{}, "rates")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "kpg.yaml", "Path to the optional yaml config file with run defaults")

// loadConfig reads the app config file; a missing file yields defaults.
func loadConfig() (kapgain.Config, error) {
	return kapgain.LoadConfig(*configFile)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails (e.g. output is not a tty style glamour knows).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parserList is a repeatable -p flag.
type parserList []string

func (l *parserList) String() string { return fmt.Sprint([]string(*l)) }
func (l *parserList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
