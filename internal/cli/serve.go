package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/Akash-N-Exotel/botcepter/internal/archive"
	"github.com/Akash-N-Exotel/botcepter/internal/bots"
	"github.com/Akash-N-Exotel/botcepter/internal/dashboard"
	"github.com/Akash-N-Exotel/botcepter/internal/evaluator"
	"github.com/Akash-N-Exotel/botcepter/internal/form"
	"go.uber.org/zap"
)

var serveCommand = &Command{
	Name:    "serve",
	Summary: "Run the bot testing dashboard server",
	Usage: []string{
		"botcepter serve [--config FILE] [--addr HOST:PORT] [--state FILE] [--archive FILE] [--bots FILE]",
	},
}

func init() { serveCommand.Run = runServe }

func runServe(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "botcepter.yaml", "config file path")
	addr := fs.String("addr", "", "listen address (overrides config)")
	statePath := fs.String("state", "", "persisted form state path (overrides config)")
	archivePath := fs.String("archive", "", "run archive database path (overrides config)")
	botsPath := fs.String("bots", "", "bot catalog file (overrides config)")
	if wantsHelp(args) {
		printCommandUsage(serveCommand, stdout)
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
		cfg.Addr = *addr
	}
	if *statePath != "" {
		cfg.StatePath = *statePath
	}
	if *archivePath != "" {
		cfg.ArchivePath = *archivePath
	}
	if *botsPath != "" {
		cfg.BotsPath = *botsPath
	}

	catalog := bots.Catalog()
	if cfg.BotsPath != "" {
		loaded, err := bots.LoadCatalog(cfg.BotsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading bot catalog: %v\n", err)
			return ExitError
		}
		catalog = loaded
	}

	store, err := form.NewStore(cfg.StatePath, form.StoreOptions{Logger: log})
	if err != nil {
		fmt.Fprintf(stderr, "Error opening form store: %v\n", err)
		return ExitError
	}
	defer store.Close()

	timeout := time.Duration(cfg.Evaluator.TimeoutSeconds) * time.Second
	client, err := evaluator.New(cfg.Evaluator.BaseURL, timeout, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error building evaluator client: %v\n", err)
		return ExitError
	}

	var runDB *archive.DB
	if cfg.ArchivePath != "" {
		runDB, err = archive.Open(cfg.ArchivePath)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening run archive: %v\n", err)
			return ExitError
		}
		defer runDB.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting dashboard",
		zap.String("addr", cfg.Addr),
		zap.String("state", cfg.StatePath),
		zap.String("evaluator", cfg.Evaluator.BaseURL))

	err = dashboard.Serve(ctx, cfg.Addr, dashboard.Config{
		Store:     store,
		Evaluator: client,
		Hostname:  cfg.Evaluator.Hostname,
		BotName:   cfg.Evaluator.BotName,
		Archive:   runDB,
		Catalog:   catalog,
		Logger:    log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Server error: %v\n", err)
		return ExitError
	}
	return ExitOK
}
