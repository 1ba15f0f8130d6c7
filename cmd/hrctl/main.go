package main

import (
	"context"
	"os"

	"github.com/hr-records-api/internal/commands"
	"github.com/hr-records-api/pkg/logger"
)

func main() {
	// Command results go to stdout, logs to stderr
	log := logger.FromEnv(os.Stderr)

	rootCmd := commands.New(&commands.Env{Log: log, Out: os.Stdout})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
