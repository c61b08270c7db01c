package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/parley/internal/config"
	parleymcp "github.com/peterkuimelis/parley/internal/mcp"
	"github.com/peterkuimelis/parley/internal/storage"
)

func main() {
	cfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// Stdout carries the MCP protocol; diagnostics go to stderr.
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	tools := parleymcp.NewServer(cfg.DeckFile, cfg.Port)
	tools.Seed = cfg.Seed
	tools.Logger = logger
	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		tools.Recorder = store
	}

	s := server.NewMCPServer("parley", "1.0.0")
	tools.Register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
