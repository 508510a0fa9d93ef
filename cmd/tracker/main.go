package main

import (
	"mexctracker/config"
	"mexctracker/internal/tracker"
	"mexctracker/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// run tracker
	if err := tracker.StartTracker(cfg, log); err != nil {
		log.Fatal("tracker failed", zap.Error(err))
	}

	select {}
}
