package main

import (
	"log/slog"
	"os"

	"github.com/piwi3910/barcut/internal/cli"
	"github.com/piwi3910/barcut/internal/logging"
)

// main is the entry point for the barcut CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, slog.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
