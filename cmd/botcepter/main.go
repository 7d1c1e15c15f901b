package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/Akash-N-Exotel/botcepter/internal/cli"
)

func main() {
	// A missing .env file is fine; shell environment still applies.
	_ = godotenv.Load()
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
