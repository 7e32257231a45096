package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("wordsearch exited")
		os.Exit(1)
	}
}
