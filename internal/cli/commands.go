package cli

import (
	"fmt"
	"io"

	"github.com/Akash-N-Exotel/botcepter/internal/config"
	"github.com/Akash-N-Exotel/botcepter/internal/logger"
	"go.uber.org/zap"
)

var commands = []*Command{
	serveCommand,
	stubCommand,
	runCommand,
	chatCommand,
	resetCommand,
}

// loadConfig resolves configuration for a command. An empty path means
// defaults with no file on disk required.
func loadConfig(path string, stderr io.Writer) (config.Config, *zap.Logger, bool) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return config.Config{}, nil, false
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(stderr, "Error building logger: %v\n", err)
		return config.Config{}, nil, false
	}
	return cfg, log, true
}
