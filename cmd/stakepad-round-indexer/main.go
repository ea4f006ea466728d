package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stakepad/stakepad-round-indexer/cmd/stakepad-round-indexer/cli"
	"github.com/stakepad/stakepad-round-indexer/pkg"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	level, err := zerolog.ParseLevel(pkg.Getenv("LOG_LEVEL", zerolog.InfoLevel.String()))
	if err != nil {
		log.Warn().Err(err).Msg("invalid LOG_LEVEL, falling back to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := log.Logger.WithContext(context.Background())

	// setup cli commands and flags, then run the selected command
	if err := cli.Setup(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
