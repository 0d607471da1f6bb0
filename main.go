// main.go
package main

import (
	"embed"
	"errors"
	"os"

	"github.com/spf13/pflag"

	"wolfcaster/config"
	"wolfcaster/logger"
)

//go:embed assets/*
var assets embed.FS

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	config.Flags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.Log.WithError(err).Fatal("parse flags")
	}

	cfg, err := config.Load(fs)
	if err != nil {
		logger.Log.WithError(err).Fatal("load config")
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Log.WithError(err).Fatal("set up logging")
	}

	g, err := NewGame(cfg, assets)
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}
	if err := g.Run(); err != nil {
		logger.Log.WithError(err).Fatal("game loop")
	}
}
