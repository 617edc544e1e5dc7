package main

import (
	"os"

	"github.com/yokitheyo/logsweep/internal/config"
	"github.com/yokitheyo/logsweep/internal/logging"
	"github.com/yokitheyo/logsweep/internal/server"
)

func main() {
	path := os.Getenv("LOGSWEEP_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.New(os.Stderr, logging.FormatHuman, logging.LevelFromString("error")).Error("config error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.Logging.Format, logging.LevelFromString(cfg.Logging.Level))
	if err := server.Run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
