package main

import (
	"context"
	"os"

	"skillproof/internal/cli"
	"skillproof/internal/platform/logger"
)

func main() {
	if err := cli.NewRoot().ExecuteContext(context.Background()); err != nil {
		logger.Named("cli").Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
