package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/Akash-N-Exotel/botcepter/internal/chatstub"
	"go.uber.org/zap"
)

var stubCommand = &Command{
	Name:    "stub",
	Summary: "Run the local chat bot stub server",
	Usage: []string{
		"botcepter stub [--config FILE] [--addr HOST:PORT] [--delay DURATION]",
	},
}

func init() { stubCommand.Run = runStub }

func runStub(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stub", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "botcepter.yaml", "config file path")
	addr := fs.String("addr", "", "listen address (overrides config)")
	delay := fs.Duration("delay", 0, "simulated response delay (0 uses the default)")
	if wantsHelp(args) {
		printCommandUsage(stubCommand, stdout)
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
	if *addr != "" {
		cfg.StubAddr = *addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting chat stub", zap.String("addr", cfg.StubAddr))
	err := chatstub.Serve(ctx, chatstub.Config{
		Addr:          cfg.StubAddr,
		ResponseDelay: *delay,
		Logger:        log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Stub server error: %v\n", err)
		return ExitError
	}
	return ExitOK
}
