package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/Akash-N-Exotel/botcepter/internal/form"
)

var resetCommand = &Command{
	Name:    "reset",
	Summary: "Reset the persisted form state to the default questions",
	Usage: []string{
		"botcepter reset [--config FILE] [--state FILE]",
	},
}

func init() { resetCommand.Run = runReset }

func runReset(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "botcepter.yaml", "config file path")
	statePath := fs.String("state", "", "persisted form state path (overrides config)")
	if wantsHelp(args) {
		printCommandUsage(resetCommand, stdout)
		return ExitOK
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	cfg, log, ok := loadConfig(*configPath, stderr)
	if !ok {
		return ExitError
	}
	defer log.Sync()
	if *statePath != "" {
		cfg.StatePath = *statePath
	}

	store, err := form.NewStore(cfg.StatePath, form.StoreOptions{Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Error opening form store: %v\n", err)
		return ExitError
	}
	defer store.Close()

	state := store.Reset()
	fmt.Fprintf(stdout, "Reset %s to %d default questions\n", cfg.StatePath, len(state.Questions))
	return ExitOK
}
