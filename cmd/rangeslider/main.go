package main

import (
	"context"
	"os"

	"github.com/edward-ap/rangeslider/internal/logging"
)

func main() {
	cmd := newCommand(os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log := logging.New(os.Stderr)
		log.Error().Err(err).Msg("rangeslider failed")
		os.Exit(1)
	}
}
