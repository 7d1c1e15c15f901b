package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Akash-N-Exotel/botcepter/internal/chatstub"
	"github.com/Akash-N-Exotel/botcepter/internal/logger"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:3000", "listen address")
	delay := flag.Duration("delay", 0, "simulated response delay (0 uses the default)")
	greeting := flag.String("greeting", "", "override the stub greeting")
	env := flag.String("env", "local", "environment name")
	flag.Parse()

	log, err := logger.New(*env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting chat stub", zap.String("addr", *addr))
	err = chatstub.Serve(ctx, chatstub.Config{
		Addr:          *addr,
		ResponseDelay: *delay,
		Greeting:      *greeting,
		Logger:        log,
	})
	if err != nil {
		log.Error("stub server failed", zap.Error(err))
		os.Exit(1)
	}
}
