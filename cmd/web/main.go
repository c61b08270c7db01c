package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/config"
	"github.com/peterkuimelis/parley/internal/storage"
	"github.com/peterkuimelis/parley/internal/web"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVar(&cfg.WebAddr, "addr", cfg.WebAddr, "HTTP address to listen on")
	flag.Parse()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var results web.ResultLister
	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Fatal("open result store", zap.Error(err))
		}
		defer store.Close()
		results = store
	}

	srv := web.NewServer(cfg.DeckFile, results, logger)
	logger.Info("parley web UI listening", zap.String("addr", cfg.WebAddr))
	if err := srv.ListenAndServe(cfg.WebAddr); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
