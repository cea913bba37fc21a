package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tarungka/sift/pipeline"
)

var (
	buildString = "unknown"
	ko          = koanf.New(".")
)

func main() {

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	initFlags(ko)

	if ko.Bool("version") {
		fmt.Println(buildString)
		os.Exit(0)
	}

	opts, err := pipeline.ParseOptions(ko)
	if err != nil {
		log.Fatal().Err(err).Msg("Error when reading config")
	}

	p, err := pipeline.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Error when configuring the scan")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := p.Scan(ctx); err != nil {
		log.Fatal().Err(err).Msg("Scan failed")
	}
}
