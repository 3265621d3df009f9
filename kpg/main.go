package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/zitko/kapgain/cmd"
)

func main() {
	// Local overrides (config path, proxies) may live in a .env file.
	godotenv.Load()

	// Shell completion: when invoked by the shell's completion hook this
	// prints candidates and exits.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"calc": {Flags: map[string]complete.Predictor{
				"i": predict.Dirs("*"),
				"o": predict.Dirs("*"),
				"r": predict.Files("*.csv"),
			}},
			"statements": {Flags: map[string]complete.Predictor{
				"i": predict.Dirs("*"),
				"o": predict.Dirs("*"),
			}},
			"rates": {Flags: map[string]complete.Predictor{
				"save": predict.Files("*.csv"),
			}},
			"topic": {},
		},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
